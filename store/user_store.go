package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/nwk-labs/network-backend/model"
	"github.com/nwk-labs/network-backend/utils"
)

type userStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &userStore{db: db}
}

func (s *userStore) Create(user *model.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrapf(utils.ErrConflict, "username %s already taken", user.Username)
		}
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

func (s *userStore) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(utils.ErrNotFound, "user %s", id)
		}
		return nil, errors.Wrap(err, "failed to query user")
	}
	return &user, nil
}

func (s *userStore) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(utils.ErrNotFound, "user %s", username)
		}
		return nil, errors.Wrap(err, "failed to query user")
	}
	return &user, nil
}

// Delete removes the user together with every dependent row: posts authored
// by the user, likes on those posts, likes made by the user, and follow
// edges in either direction. One transaction, so a failed step leaves the
// graph intact.
func (s *userStore) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&model.Post{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&model.Like{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete likes on user's posts")
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete user's likes")
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", id, id).Delete(&model.Follow{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete user's follow edges")
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete user's posts")
		}
		res := tx.Where("id = ?", id).Delete(&model.User{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete user")
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(utils.ErrNotFound, "user %s", id)
		}
		return nil
	})
}
