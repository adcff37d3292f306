package social

import (
	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
)

// LikeService toggles like edges and serves like counts. status may be nil;
// counts then always come from the likes table.
type LikeService struct {
	stores *store.Stores
	status *utils.RedisStatusStore
}

func NewLikeService(stores *store.Stores, status *utils.RedisStatusStore) *LikeService {
	return &LikeService{stores: stores, status: status}
}

// ToggleLike flips the viewer's like on a post and returns the new state and
// count. The insert-if-absent path rides the (user, post) primary key, so a
// toggle racing another toggle on the same pair observes the winner's row
// and flips the other way — the pair always lands on a consistent state.
func (s *LikeService) ToggleLike(userID, postID string) (bool, int64, error) {
	if _, err := s.stores.Posts.GetByID(postID); err != nil {
		return false, 0, err
	}

	inserted, err := s.stores.Likes.CreateIfAbsent(userID, postID)
	if err != nil {
		return false, 0, err
	}
	liked := inserted
	if !inserted {
		if err := s.stores.Likes.Delete(userID, postID); err != nil {
			return false, 0, err
		}
	}

	count, err := s.stores.Likes.CountForPost(postID)
	if err != nil {
		return false, 0, err
	}
	s.status.SetLikeCount(postID, count)
	return liked, count, nil
}

// LikeCount serves the count from the status store when cached, otherwise
// from the likes table (populating the cache on the way out).
func (s *LikeService) LikeCount(postID string) (int64, error) {
	if count, ok := s.status.GetLikeCount(postID); ok {
		return count, nil
	}
	count, err := s.stores.Likes.CountForPost(postID)
	if err != nil {
		return 0, err
	}
	s.status.SetLikeCount(postID, count)
	return count, nil
}
