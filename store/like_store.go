package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nwk-labs/network-backend/model"
)

type likeStore struct {
	db *gorm.DB
}

func NewLikeStore(db *gorm.DB) LikeStore {
	return &likeStore{db: db}
}

// CreateIfAbsent rides the composite primary key: the insert is dropped on
// conflict and RowsAffected tells the caller whether this invocation won.
// A toggle that loses the race reinterprets the existing row as "already
// liked" and flips to delete, so concurrent toggles serialize on the
// constraint instead of an application lock.
func (s *likeStore) CreateIfAbsent(userID, postID string) (bool, error) {
	like := model.Like{UserID: userID, PostID: postID}
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, errors.Wrap(res.Error, "failed to create like")
	}
	return res.RowsAffected > 0, nil
}

func (s *likeStore) Delete(userID, postID string) error {
	err := s.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{}).Error
	return errors.Wrap(err, "failed to delete like")
}

func (s *likeStore) CountForPost(postID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count likes")
	}
	return count, nil
}
