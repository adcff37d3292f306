package store

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/nwk-labs/network-backend/model"
	"github.com/nwk-labs/network-backend/utils"
)

type postStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) PostStore {
	return &postStore{db: db}
}

// cursorRetryLimit bounds the re-reads when concurrent creates collide on
// the cursor index.
const cursorRetryLimit = 5

// Create inserts the post and assigns its cursor, the insertion counter that
// breaks feed-ordering ties between posts sharing a timestamp. MAX+1 runs in
// the same transaction as the insert; under READ COMMITTED two concurrent
// creates can read the same MAX, so a writer that trips the unique index on
// cursor retries with a fresh read until both land.
func (s *postStore) Create(post *model.Post) error {
	if strings.TrimSpace(post.Content) == "" {
		return errors.Wrap(utils.ErrInvalidInput, "post content must not be empty")
	}
	var err error
	for attempt := 0; attempt < cursorRetryLimit; attempt++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			var nextCursor int64
			if err := tx.Model(&model.Post{}).
				Select("COALESCE(MAX(cursor), 0) + 1").
				Scan(&nextCursor).Error; err != nil {
				return errors.Wrap(err, "failed to get next post cursor")
			}
			post.Cursor = nextCursor
			return tx.Create(post).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrap(err, "failed to create post")
		}
	}
	return errors.Wrap(err, "failed to create post after cursor retries")
}

func (s *postStore) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := s.db.Preload("User").Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(utils.ErrNotFound, "post %s", id)
		}
		return nil, errors.Wrap(err, "failed to query post")
	}
	return &post, nil
}

// UpdateContent replaces the body only. CreatedAt is guarded by the model's
// <-:create permission and the author never changes on edit.
func (s *postStore) UpdateContent(id string, content string) error {
	res := s.db.Model(&model.Post{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to update post content")
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(utils.ErrNotFound, "post %s", id)
	}
	return nil
}

// Delete removes the post and its likes in one transaction.
func (s *postStore) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete post's likes")
		}
		res := tx.Where("id = ?", id).Delete(&model.Post{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete post")
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(utils.ErrNotFound, "post %s", id)
		}
		return nil
	})
}
