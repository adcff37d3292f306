// Package server wires the HTTP surface: gin router, middleware, and one
// handler per endpoint of the original application.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nwk-labs/network-backend/auth"
	"github.com/nwk-labs/network-backend/feed"
	"github.com/nwk-labs/network-backend/server/middlewares"
	"github.com/nwk-labs/network-backend/social"
	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
)

// Deps bundles the services the handlers delegate to.
type Deps struct {
	Stores *store.Stores
	Auth   *auth.Service
	Feed   *feed.Assembler
	Graph  *social.GraphService
	Likes  *social.LikeService
	Posts  *social.PostService
}

// NewRouter assembles the full route table. Method mismatches on known paths
// yield 405 rather than gin's default 404.
func NewRouter(deps Deps) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	router.HandleMethodNotAllowed = true

	optionalAuth := middlewares.OptionalJWT(deps.Auth)
	requiredAuth := middlewares.JWT(deps.Auth)

	router.POST("/register", RegisterHandler(deps.Auth))
	router.POST("/login", LoginHandler(deps.Auth))
	router.POST("/logout", LogoutHandler())

	router.GET("/feed", optionalAuth, GlobalFeedHandler(deps.Feed))
	router.GET("/feed/following", requiredAuth, FollowingFeedHandler(deps.Feed))

	router.POST("/posts", requiredAuth, CreatePostHandler(deps.Posts, deps.Feed))
	router.POST("/posts/:id", requiredAuth, EditPostHandler(deps.Posts))
	router.DELETE("/posts/:id", requiredAuth, DeletePostHandler(deps.Posts))
	router.POST("/posts/:id/like", requiredAuth, ToggleLikeHandler(deps.Likes))

	router.GET("/users/:username", optionalAuth, ProfileHandler(deps.Feed, deps.Stores))
	router.POST("/users/:username", requiredAuth, FollowActionHandler(deps.Graph, deps.Stores))

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"code": utils.ErrorMethodNotAllowed,
			"msg":  "method not allowed",
		})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Network server - API not found"})
	})

	return router
}
