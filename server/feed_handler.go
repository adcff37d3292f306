package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nwk-labs/network-backend/feed"
	"github.com/nwk-labs/network-backend/server/middlewares"
	"github.com/nwk-labs/network-backend/utils"
	Logger "github.com/nwk-labs/network-backend/utils/log"
)

// pageParam reads ?page=N, defaulting to the first page on anything
// unparseable. Out-of-range pages come back as empty pages, never errors.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// viewerParam returns the optional viewer set by OptionalJWT.
func viewerParam(c *gin.Context) *string {
	if viewerID, ok := middlewares.ViewerID(c); ok {
		return &viewerID
	}
	return nil
}

// GlobalFeedHandler serves the paginated global feed, annotated for the
// viewer when one is present.
func GlobalFeedHandler(assembler *feed.Assembler) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := assembler.GlobalFeed(viewerParam(c), pageParam(c), feed.DefaultPageSize)
		if err != nil {
			Logger.LogV2.Errorf("failed to assemble global feed: %v", err)
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error(), "code": utils.ErrorCode(err)})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// FollowingFeedHandler serves posts from followed authors only. The JWT
// middleware guarantees a viewer before this runs.
func FollowingFeedHandler(assembler *feed.Assembler) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, _ := middlewares.ViewerID(c)
		page, err := assembler.FollowingFeed(viewerID, pageParam(c), feed.DefaultPageSize)
		if err != nil {
			Logger.LogV2.Errorf("failed to assemble following feed: %v", err)
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error(), "code": utils.ErrorCode(err)})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
