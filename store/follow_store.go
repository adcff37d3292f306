package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nwk-labs/network-backend/model"
)

type followStore struct {
	db *gorm.DB
}

func NewFollowStore(db *gorm.DB) FollowStore {
	return &followStore{db: db}
}

// Create is idempotent: a duplicate (follower, followee) pair hits the
// composite primary key and is dropped with ON CONFLICT DO NOTHING, so two
// racing follow requests converge on a single edge.
func (s *followStore) Create(followerID, followeeID string) error {
	follow := model.Follow{FollowerID: followerID, FolloweeID: followeeID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(err, "failed to create follow edge")
	}
	return nil
}

func (s *followStore) Delete(followerID, followeeID string) error {
	err := s.db.
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{}).Error
	return errors.Wrap(err, "failed to delete follow edge")
}

func (s *followStore) Exists(followerID, followeeID string) (bool, error) {
	var count int64
	err := s.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to query follow edge")
	}
	return count > 0, nil
}

func (s *followStore) CountFollowers(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count followers")
	}
	return count, nil
}

func (s *followStore) CountFollowing(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count following")
	}
	return count, nil
}
