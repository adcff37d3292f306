package social

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nwk-labs/network-backend/model"
	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
)

// PostService owns post authoring, editing and deletion.
type PostService struct {
	stores *store.Stores
	status *utils.RedisStatusStore
}

func NewPostService(stores *store.Stores, status *utils.RedisStatusStore) *PostService {
	return &PostService{stores: stores, status: status}
}

func (s *PostService) CreatePost(authorID, content string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.Wrap(utils.ErrInvalidInput, "post content must not be empty")
	}
	post := &model.Post{
		Id:      uuid.New().String(),
		UserID:  authorID,
		Content: content,
	}
	if err := s.stores.Posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost replaces the body. Only the author may edit, the timestamp and
// author never change, and there is no edited-at marker.
func (s *PostService) EditPost(requesterID, postID, newContent string) error {
	post, err := s.stores.Posts.GetByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return errors.Wrap(utils.ErrPermissionDenied, "only the author can edit a post")
	}
	if strings.TrimSpace(newContent) == "" {
		return errors.Wrap(utils.ErrInvalidInput, "post content must not be empty")
	}
	return s.stores.Posts.UpdateContent(postID, newContent)
}

// DeletePost removes an author's post along with its likes.
func (s *PostService) DeletePost(requesterID, postID string) error {
	post, err := s.stores.Posts.GetByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return errors.Wrap(utils.ErrPermissionDenied, "only the author can delete a post")
	}
	if err := s.stores.Posts.Delete(postID); err != nil {
		return err
	}
	s.status.InvalidateLikeCount(postID)
	return nil
}
