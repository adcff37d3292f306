package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwk-labs/network-backend/feed"
	"github.com/nwk-labs/network-backend/model"
	"github.com/nwk-labs/network-backend/server/middlewares"
	"github.com/nwk-labs/network-backend/social"
	"github.com/nwk-labs/network-backend/utils"
	Logger "github.com/nwk-labs/network-backend/utils/log"
)

// CreatePostHandler accepts the new-post form and returns the fresh first
// page of the global feed, which is what the original redirect landed on.
func CreatePostHandler(posts *social.PostService, assembler *feed.Assembler) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, _ := middlewares.ViewerID(c)

		var input model.NewPostInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post body", "code": utils.ErrorInvalidInput})
			return
		}

		post, err := posts.CreatePost(viewerID, input.Content)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error(), "code": utils.ErrorCode(err)})
			return
		}

		page, err := assembler.GlobalFeed(&viewerID, 1, feed.DefaultPageSize)
		if err != nil {
			Logger.LogV2.Errorf("failed to refresh feed after post create: %v", err)
			c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "post": post, "feed": page})
	}
}

// EditPostHandler applies an author-only content edit. The response shape is
// the original endpoint's: {success:true} or {error, status}.
func EditPostHandler(posts *social.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, _ := middlewares.ViewerID(c)

		var input model.EditPostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid edit body", "status": http.StatusBadRequest})
			return
		}

		if err := posts.EditPost(viewerID, c.Param("id"), input.Content); err != nil {
			status := utils.HTTPStatus(err)
			c.JSON(status, gin.H{"error": err.Error(), "status": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// DeletePostHandler removes an author's post together with its likes.
func DeletePostHandler(posts *social.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, _ := middlewares.ViewerID(c)

		if err := posts.DeletePost(viewerID, c.Param("id")); err != nil {
			status := utils.HTTPStatus(err)
			c.JSON(status, gin.H{"error": err.Error(), "status": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ToggleLikeHandler flips the viewer's like on a post. Failures of any kind
// surface as {success:false, error} with the underlying message, the way the
// original endpoint reported them.
func ToggleLikeHandler(likes *social.LikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, _ := middlewares.ViewerID(c)

		liked, likeCount, err := likes.ToggleLike(viewerID, c.Param("id"))
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"liked":     liked,
			"likeCount": likeCount,
		})
	}
}
