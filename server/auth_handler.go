package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/nwk-labs/network-backend/auth"
	"github.com/nwk-labs/network-backend/model"
	"github.com/nwk-labs/network-backend/utils"
	Logger "github.com/nwk-labs/network-backend/utils/log"
)

const sessionCookieMaxAge = 7 * 24 * 60 * 60

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, sessionCookieMaxAge, "/", "", false, true)
}

// RegisterHandler creates the account and logs the new user in. The failure
// messages are the exact texts the original registration page shows.
func RegisterHandler(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input model.RegisterInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration request."})
			return
		}
		if input.Password != input.Confirmation {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Passwords must match."})
			return
		}

		user, token, err := authService.Register(input.Username, input.Email, input.Password)
		if err != nil {
			if errors.Is(err, utils.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"message": "Username already taken."})
				return
			}
			Logger.LogV2.Errorf("registration failed: %v", err)
			c.JSON(utils.HTTPStatus(err), gin.H{"message": err.Error()})
			return
		}

		setSessionCookie(c, token)
		c.JSON(http.StatusCreated, gin.H{
			"user":  user,
			"token": token,
		})
	}
}

// LoginHandler verifies credentials and starts a session.
func LoginHandler(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input model.LoginInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid login request."})
			return
		}

		user, token, err := authService.Login(input.Username, input.Password)
		if err != nil {
			if errors.Is(err, utils.ErrUnauthenticated) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username and/or password."})
				return
			}
			Logger.LogV2.Errorf("login failed: %v", err)
			c.JSON(utils.HTTPStatus(err), gin.H{"message": err.Error()})
			return
		}

		setSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{
			"user":  user,
			"token": token,
		})
	}
}

// LogoutHandler clears the session cookie and sends the user back to the
// global feed.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("token", "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/feed")
	}
}
