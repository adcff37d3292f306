package model

import (
	"time"
)

/*

View structs returned by the feed assembler and serialized by the HTTP
layer. PostView is a flattened Post: author fields are lifted out of the
association and the display timestamp is pre-rendered.

*/

type PostView struct {
	Id                 string    `json:"id"`
	Author             string    `json:"author"`
	AuthorID           string    `json:"authorId"`
	Content            string    `json:"content"`
	CreatedAt          time.Time `json:"createdAt"`
	FormattedTimestamp string    `json:"formattedTimestamp"`
	LikeCount          int64     `json:"likeCount"`
	LikedByViewer      bool      `json:"likedByViewer"`
}

// FeedPage is one page of a feed. Page numbers are 1-indexed and an
// out-of-range page is returned as an empty (not error) page.
type FeedPage struct {
	Posts    []*PostView `json:"posts"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// ProfileView is a user feed plus the social-graph numbers the profile page
// shows next to it.
type ProfileView struct {
	UserID         string   `json:"userId"`
	Username       string   `json:"username"`
	FollowerCount  int64    `json:"followerCount"`
	FollowingCount int64    `json:"followingCount"`
	IsFollowing    bool     `json:"isFollowing"`
	Feed           FeedPage `json:"feed"`
}
