package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nwk-labs/network-backend/auth"
	"github.com/nwk-labs/network-backend/feed"
	"github.com/nwk-labs/network-backend/social"
	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
	"github.com/nwk-labs/network-backend/utils/dbtest"
	"github.com/nwk-labs/network-backend/utils/dotenv"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	db, err := dbtest.NewDB()
	require.NoError(t, err)
	stores := store.NewStores(db)
	return NewRouter(Deps{
		Stores: stores,
		Auth:   auth.NewService(stores, "test-secret"),
		Feed:   feed.NewAssembler(db, stores),
		Graph:  social.NewGraphService(stores),
		Likes:  social.NewLikeService(stores, nil),
		Posts:  social.NewPostService(stores, nil),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body gin.H) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

func registerTestUser(t *testing.T, router *gin.Engine, username string) string {
	recorder := doJSON(t, router, http.MethodPost, "/register", "", gin.H{
		"username":     username,
		"email":        username + "@example.com",
		"password":     "hunter2",
		"confirmation": "hunter2",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	token, ok := decodeBody(t, recorder)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func createTestPost(t *testing.T, router *gin.Engine, token, content string) string {
	recorder := doJSON(t, router, http.MethodPost, "/posts", token, gin.H{"content": content})
	require.Equal(t, http.StatusCreated, recorder.Code)
	post, ok := decodeBody(t, recorder)["post"].(map[string]interface{})
	require.True(t, ok)
	id, ok := post["id"].(string)
	require.True(t, ok)
	return id
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("Test_register_sets_session_cookie", func(t *testing.T) {
		router := newTestRouter(t)
		recorder := doJSON(t, router, http.MethodPost, "/register", "", gin.H{
			"username":     "alice",
			"email":        "alice@example.com",
			"password":     "hunter2",
			"confirmation": "hunter2",
		})
		require.Equal(t, http.StatusCreated, recorder.Code)

		var sessionCookie *http.Cookie
		for _, cookie := range recorder.Result().Cookies() {
			if cookie.Name == "token" {
				sessionCookie = cookie
			}
		}
		require.NotNil(t, sessionCookie)
		require.NotEmpty(t, sessionCookie.Value)
		require.True(t, sessionCookie.HttpOnly)
	})

	t.Run("Test_password_mismatch", func(t *testing.T) {
		router := newTestRouter(t)
		recorder := doJSON(t, router, http.MethodPost, "/register", "", gin.H{
			"username":     "alice",
			"email":        "alice@example.com",
			"password":     "hunter2",
			"confirmation": "different",
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Equal(t, "Passwords must match.", decodeBody(t, recorder)["message"])
	})

	t.Run("Test_duplicate_username", func(t *testing.T) {
		router := newTestRouter(t)
		registerTestUser(t, router, "alice")

		recorder := doJSON(t, router, http.MethodPost, "/register", "", gin.H{
			"username":     "alice",
			"email":        "other@example.com",
			"password":     "hunter2",
			"confirmation": "hunter2",
		})
		require.Equal(t, http.StatusConflict, recorder.Code)
		require.Equal(t, "Username already taken.", decodeBody(t, recorder)["message"])
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("Test_valid_login", func(t *testing.T) {
		router := newTestRouter(t)
		registerTestUser(t, router, "alice")

		recorder := doJSON(t, router, http.MethodPost, "/login", "", gin.H{
			"username": "alice",
			"password": "hunter2",
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		require.NotEmpty(t, body["token"])
	})

	t.Run("Test_bad_credentials", func(t *testing.T) {
		router := newTestRouter(t)
		registerTestUser(t, router, "alice")

		recorder := doJSON(t, router, http.MethodPost, "/login", "", gin.H{
			"username": "alice",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		require.Equal(t, "Invalid username and/or password.", decodeBody(t, recorder)["message"])
	})

	t.Run("Test_logout_clears_cookie_and_redirects", func(t *testing.T) {
		router := newTestRouter(t)
		recorder := doJSON(t, router, http.MethodPost, "/logout", "", nil)
		require.Equal(t, http.StatusFound, recorder.Code)
		require.Equal(t, "/feed", recorder.Header().Get("Location"))

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "token", cookies[0].Name)
		require.Empty(t, cookies[0].Value)
	})
}

func TestFeedEndpoints(t *testing.T) {
	t.Run("Test_global_feed_is_public", func(t *testing.T) {
		router := newTestRouter(t)
		token := registerTestUser(t, router, "alice")
		createTestPost(t, router, token, "hello world")

		recorder := doJSON(t, router, http.MethodGet, "/feed", "", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		posts, ok := body["posts"].([]interface{})
		require.True(t, ok)
		require.Len(t, posts, 1)
	})

	t.Run("Test_following_feed_requires_auth", func(t *testing.T) {
		router := newTestRouter(t)
		recorder := doJSON(t, router, http.MethodGet, "/feed/following", "", nil)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		require.Equal(t, float64(utils.ErrorTokenAuthFail), decodeBody(t, recorder)["code"])
	})

	t.Run("Test_following_feed_filters_to_followed_authors", func(t *testing.T) {
		router := newTestRouter(t)
		aliceToken := registerTestUser(t, router, "alice")
		bobToken := registerTestUser(t, router, "bob")
		viewerToken := registerTestUser(t, router, "viewer")
		createTestPost(t, router, aliceToken, "from alice")
		createTestPost(t, router, bobToken, "from bob")

		recorder := doJSON(t, router, http.MethodPost, "/users/alice", viewerToken, gin.H{"action": "follow"})
		require.Equal(t, http.StatusFound, recorder.Code)

		recorder = doJSON(t, router, http.MethodGet, "/feed/following", viewerToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		posts := decodeBody(t, recorder)["posts"].([]interface{})
		require.Len(t, posts, 1)
		post := posts[0].(map[string]interface{})
		require.Equal(t, "from alice", post["content"])
	})
}

func TestPostEndpoints(t *testing.T) {
	t.Run("Test_create_post_returns_fresh_feed", func(t *testing.T) {
		router := newTestRouter(t)
		token := registerTestUser(t, router, "alice")

		recorder := doJSON(t, router, http.MethodPost, "/posts", token, gin.H{"content": "hello"})
		require.Equal(t, http.StatusCreated, recorder.Code)
		body := decodeBody(t, recorder)
		require.Equal(t, true, body["success"])
		feedPage, ok := body["feed"].(map[string]interface{})
		require.True(t, ok)
		require.Len(t, feedPage["posts"], 1)
	})

	t.Run("Test_create_post_requires_auth", func(t *testing.T) {
		router := newTestRouter(t)
		recorder := doJSON(t, router, http.MethodPost, "/posts", "", gin.H{"content": "hello"})
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Test_edit_by_author", func(t *testing.T) {
		router := newTestRouter(t)
		token := registerTestUser(t, router, "alice")
		postID := createTestPost(t, router, token, "before")

		recorder := doJSON(t, router, http.MethodPost, "/posts/"+postID, token, gin.H{"content": "after"})
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, true, decodeBody(t, recorder)["success"])

		recorder = doJSON(t, router, http.MethodGet, "/feed", "", nil)
		posts := decodeBody(t, recorder)["posts"].([]interface{})
		post := posts[0].(map[string]interface{})
		require.Equal(t, "after", post["content"])
	})

	t.Run("Test_edit_by_non_author_is_forbidden", func(t *testing.T) {
		router := newTestRouter(t)
		aliceToken := registerTestUser(t, router, "alice")
		bobToken := registerTestUser(t, router, "bob")
		postID := createTestPost(t, router, aliceToken, "mine")

		recorder := doJSON(t, router, http.MethodPost, "/posts/"+postID, bobToken, gin.H{"content": "hijacked"})
		require.Equal(t, http.StatusForbidden, recorder.Code)
		body := decodeBody(t, recorder)
		require.NotEmpty(t, body["error"])
		require.Equal(t, float64(http.StatusForbidden), body["status"])
	})

	t.Run("Test_like_toggle_round_trip", func(t *testing.T) {
		router := newTestRouter(t)
		aliceToken := registerTestUser(t, router, "alice")
		bobToken := registerTestUser(t, router, "bob")
		postID := createTestPost(t, router, aliceToken, "like me")

		recorder := doJSON(t, router, http.MethodPost, "/posts/"+postID+"/like", bobToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		require.Equal(t, true, body["liked"])
		require.Equal(t, float64(1), body["likeCount"])

		recorder = doJSON(t, router, http.MethodPost, "/posts/"+postID+"/like", bobToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body = decodeBody(t, recorder)
		require.Equal(t, false, body["liked"])
		require.Equal(t, float64(0), body["likeCount"])
	})

	t.Run("Test_delete_post", func(t *testing.T) {
		router := newTestRouter(t)
		token := registerTestUser(t, router, "alice")
		postID := createTestPost(t, router, token, "short lived")

		recorder := doJSON(t, router, http.MethodDelete, "/posts/"+postID, token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		recorder = doJSON(t, router, http.MethodGet, "/feed", "", nil)
		require.Empty(t, decodeBody(t, recorder)["posts"])
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Run("Test_profile_counts_follow_state", func(t *testing.T) {
		router := newTestRouter(t)
		aliceToken := registerTestUser(t, router, "alice")
		viewerToken := registerTestUser(t, router, "viewer")
		createTestPost(t, router, aliceToken, "on my wall")

		recorder := doJSON(t, router, http.MethodPost, "/users/alice", viewerToken, gin.H{"action": "follow"})
		require.Equal(t, http.StatusFound, recorder.Code)
		require.Equal(t, "/users/alice", recorder.Header().Get("Location"))

		recorder = doJSON(t, router, http.MethodGet, "/users/alice", viewerToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		require.Equal(t, "alice", body["username"])
		require.Equal(t, float64(1), body["followerCount"])
		require.Equal(t, true, body["isFollowing"])

		recorder = doJSON(t, router, http.MethodPost, "/users/alice", viewerToken, gin.H{"action": "unfollow"})
		require.Equal(t, http.StatusFound, recorder.Code)

		recorder = doJSON(t, router, http.MethodGet, "/users/alice", viewerToken, nil)
		body = decodeBody(t, recorder)
		require.Equal(t, float64(0), body["followerCount"])
		require.Equal(t, false, body["isFollowing"])
	})

	t.Run("Test_unknown_profile_is_not_found", func(t *testing.T) {
		router := newTestRouter(t)
		recorder := doJSON(t, router, http.MethodGet, "/users/nobody", "", nil)
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Test_self_follow_rejected", func(t *testing.T) {
		router := newTestRouter(t)
		token := registerTestUser(t, router, "alice")
		recorder := doJSON(t, router, http.MethodPost, "/users/alice", token, gin.H{"action": "follow"})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRouterFallbacks(t *testing.T) {
	t.Run("Test_wrong_method_is_405", func(t *testing.T) {
		router := newTestRouter(t)
		recorder := doJSON(t, router, http.MethodDelete, "/register", "", nil)
		require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		require.Equal(t, float64(utils.ErrorMethodNotAllowed), decodeBody(t, recorder)["code"])
	})

	t.Run("Test_unknown_route_is_404", func(t *testing.T) {
		router := newTestRouter(t)
		recorder := doJSON(t, router, http.MethodGet, "/nope", "", nil)
		require.Equal(t, http.StatusNotFound, recorder.Code)
		require.Equal(t, "Network server - API not found", decodeBody(t, recorder)["message"])
	})
}
