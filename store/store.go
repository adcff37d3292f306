// Package store holds the repository layer: one interface per entity with a
// finite set of named queries, polymorphic only over the storage backend.
// Uniqueness is enforced by the database constraints and surfaced as
// utils.ErrConflict; cascade cleanup of dependent rows is explicit and runs
// inside the same transaction as the parent delete.
package store

import (
	"gorm.io/gorm"

	"github.com/nwk-labs/network-backend/model"
)

type UserStore interface {
	Create(user *model.User) error
	GetByID(id string) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	Delete(id string) error
}

type PostStore interface {
	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	UpdateContent(id string, content string) error
	Delete(id string) error
}

type FollowStore interface {
	Create(followerID, followeeID string) error
	Delete(followerID, followeeID string) error
	Exists(followerID, followeeID string) (bool, error)
	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)
}

type LikeStore interface {
	// CreateIfAbsent inserts the like edge and reports whether a row was
	// actually inserted. A conflicting concurrent insert reports false.
	CreateIfAbsent(userID, postID string) (bool, error)
	Delete(userID, postID string) error
	CountForPost(postID string) (int64, error)
}

// Stores bundles the per-entity repositories over one gorm connection.
type Stores struct {
	Users   UserStore
	Posts   PostStore
	Follows FollowStore
	Likes   LikeStore
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:   NewUserStore(db),
		Posts:   NewPostStore(db),
		Follows: NewFollowStore(db),
		Likes:   NewLikeStore(db),
	}
}
