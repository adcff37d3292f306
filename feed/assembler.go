// Package feed assembles viewer-facing pages of posts: the global feed, a
// single author's feed, and the following-only feed. All three share one
// query shape — annotate each post with its like count and the viewer's own
// like state, order newest first, paginate.
package feed

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/nwk-labs/network-backend/model"
	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
)

const (
	// DefaultPageSize matches the page size of the original pages.
	DefaultPageSize = 10
	// pageSizeLimit caps a caller-supplied page size.
	pageSizeLimit = 300
)

type Assembler struct {
	db     *gorm.DB
	stores *store.Stores
}

func NewAssembler(db *gorm.DB, stores *store.Stores) *Assembler {
	return &Assembler{db: db, stores: stores}
}

// GlobalFeed returns one page of all posts, newest first. viewerID may be
// nil, in which case every likedByViewer annotation is false.
func (a *Assembler) GlobalFeed(viewerID *string, page, pageSize int) (*model.FeedPage, error) {
	return a.assemble(a.db.Model(&model.Post{}), viewerID, page, pageSize)
}

// UserFeed returns one page of a single author's posts together with the
// author's follower/following counts and whether the viewer follows them.
func (a *Assembler) UserFeed(viewerID *string, authorID string, page, pageSize int) (*model.ProfileView, error) {
	author, err := a.stores.Users.GetByID(authorID)
	if err != nil {
		return nil, err
	}

	feedPage, err := a.assemble(
		a.db.Model(&model.Post{}).Where("posts.user_id = ?", authorID),
		viewerID, page, pageSize)
	if err != nil {
		return nil, err
	}

	followers, err := a.stores.Follows.CountFollowers(authorID)
	if err != nil {
		return nil, err
	}
	following, err := a.stores.Follows.CountFollowing(authorID)
	if err != nil {
		return nil, err
	}
	isFollowing := false
	if viewerID != nil && *viewerID != "" {
		isFollowing, err = a.stores.Follows.Exists(*viewerID, authorID)
		if err != nil {
			return nil, err
		}
	}

	return &model.ProfileView{
		UserID:         author.Id,
		Username:       author.Username,
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
		Feed:           *feedPage,
	}, nil
}

// FollowingFeed returns one page of posts authored by users the viewer
// follows. A missing viewer is an authentication error, not an empty feed.
func (a *Assembler) FollowingFeed(viewerID string, page, pageSize int) (*model.FeedPage, error) {
	if viewerID == "" {
		return nil, errors.Wrap(utils.ErrUnauthenticated, "following feed requires a viewer")
	}
	base := a.db.Model(&model.Post{}).
		Joins("JOIN follows ON follows.followee_id = posts.user_id AND follows.follower_id = ?", viewerID)
	return a.assemble(base, &viewerID, page, pageSize)
}

// assemble runs the shared annotated query on top of a pre-filtered base.
// Like counts come from a grouped left join and the viewer's like state from
// a second join against the viewer's own rows, so one round trip annotates
// the whole page.
func (a *Assembler) assemble(base *gorm.DB, viewerID *string, page, pageSize int) (*model.FeedPage, error) {
	page, pageSize = sanitizePagination(page, pageSize)
	viewer := ""
	if viewerID != nil {
		viewer = *viewerID
	}

	var posts []*model.Post
	err := base.
		Preload("User").
		Select("posts.*, " +
			"COALESCE(like_counts.like_count, 0) AS like_count, " +
			"CASE WHEN viewer_likes.user_id IS NOT NULL THEN TRUE ELSE FALSE END AS liked_by_viewer").
		Joins("LEFT JOIN (SELECT post_id, COUNT(*) AS like_count FROM likes GROUP BY post_id) like_counts ON like_counts.post_id = posts.id").
		Joins("LEFT JOIN likes viewer_likes ON viewer_likes.post_id = posts.id AND viewer_likes.user_id = ?", viewer).
		Order("posts.created_at DESC, posts.cursor DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query feed posts")
	}

	views := make([]*model.PostView, 0, len(posts))
	for _, post := range posts {
		view := &model.PostView{}
		if err := copier.Copy(view, post); err != nil {
			return nil, errors.Wrap(err, "failed to build post view")
		}
		view.Author = post.User.Username
		view.AuthorID = post.UserID
		view.FormattedTimestamp = post.FormattedTimestamp()
		views = append(views, view)
	}

	return &model.FeedPage{
		Posts:    views,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func sanitizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > pageSizeLimit {
		pageSize = pageSizeLimit
	}
	return page, pageSize
}
