package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwk-labs/network-backend/feed"
	"github.com/nwk-labs/network-backend/model"
	"github.com/nwk-labs/network-backend/server/middlewares"
	"github.com/nwk-labs/network-backend/social"
	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
)

// ProfileHandler serves a user's page: their paginated posts plus
// follower/following counts and whether the viewer follows them.
func ProfileHandler(assembler *feed.Assembler, stores *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := stores.Users.GetByUsername(c.Param("username"))
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error(), "code": utils.ErrorCode(err)})
			return
		}

		profile, err := assembler.UserFeed(viewerParam(c), user.Id, pageParam(c), feed.DefaultPageSize)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error(), "code": utils.ErrorCode(err)})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// FollowActionHandler mutates the follow edge between the viewer and the
// profile's owner, then sends the client back to the profile the way the
// original form post did.
func FollowActionHandler(graph *social.GraphService, stores *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, _ := middlewares.ViewerID(c)

		target, err := stores.Users.GetByUsername(c.Param("username"))
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error(), "code": utils.ErrorCode(err)})
			return
		}

		var input model.FollowActionInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid follow action", "code": utils.ErrorInvalidInput})
			return
		}

		switch input.Action {
		case "follow":
			err = graph.Follow(viewerID, target.Id)
		case "unfollow":
			err = graph.Unfollow(viewerID, target.Id)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "action must be follow or unfollow", "code": utils.ErrorInvalidInput})
			return
		}
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error(), "code": utils.ErrorCode(err)})
			return
		}

		c.Redirect(http.StatusFound, "/users/"+target.Username)
	}
}
