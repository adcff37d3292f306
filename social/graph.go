// Package social holds the write-side services of the social graph: follow
// edges, like toggles, and post authoring/editing.
package social

import (
	"github.com/pkg/errors"

	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
)

// GraphService maintains follow edges and their aggregates.
type GraphService struct {
	stores *store.Stores
}

func NewGraphService(stores *store.Stores) *GraphService {
	return &GraphService{stores: stores}
}

// Follow creates the edge if absent and is a no-op if present. Following
// yourself is rejected; the original app left that unguarded, this service
// does not.
func (s *GraphService) Follow(followerID, followeeID string) error {
	if followerID == followeeID {
		return errors.Wrap(utils.ErrInvalidOperation, "users cannot follow themselves")
	}
	if _, err := s.stores.Users.GetByID(followeeID); err != nil {
		return err
	}
	return s.stores.Follows.Create(followerID, followeeID)
}

// Unfollow removes the edge if present, no-op otherwise.
func (s *GraphService) Unfollow(followerID, followeeID string) error {
	return s.stores.Follows.Delete(followerID, followeeID)
}

// Counts returns (followerCount, followingCount) for a user.
func (s *GraphService) Counts(userID string) (int64, int64, error) {
	followers, err := s.stores.Follows.CountFollowers(userID)
	if err != nil {
		return 0, 0, err
	}
	following, err := s.stores.Follows.CountFollowing(userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

// IsFollowing reports whether the viewer follows the target; false when the
// viewer is absent.
func (s *GraphService) IsFollowing(viewerID *string, targetID string) (bool, error) {
	if viewerID == nil || *viewerID == "" {
		return false, nil
	}
	return s.stores.Follows.Exists(*viewerID, targetID)
}
