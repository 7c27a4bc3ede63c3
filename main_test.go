package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cadrebook/testutil"
	"cadrebook/types"

	"github.com/infinitybotlist/eureka/jsonimpl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t *testing.T
	h http.Handler
}

func newClient(t *testing.T) *client {
	testutil.SetupState(t)
	return &client{t: t, h: newRouter()}
}

func (c *client) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		b, err := jsonimpl.Marshal(body)
		require.NoError(c.t, err)
		buf.Write(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, jsonimpl.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (c *client) register(username string) types.AuthView {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@x.io",
		"password": "password1",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[types.AuthView](c.t, rec)
}

func (c *client) createPost(token, content string) types.PostView {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/posts", token, map[string]string{"content": content})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[types.PostView](c.t, rec)
}

func TestScenarioOverHTTP(t *testing.T) {
	c := newClient(t)

	alice := c.register("alice")
	assert.Equal(t, "bearer", alice.TokenType)
	assert.Equal(t, "alice", alice.User.Username)

	rec := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "ALICE",
		"email":    "other@x.io",
		"password": "password1",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "That username is already taken", decode[types.ApiError](t, rec).Message)

	rec = c.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "wrong-pass"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPass := decode[types.ApiError](t, rec).Message

	rec = c.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "nobody", "password": "wrong-pass"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, wrongPass, decode[types.ApiError](t, rec).Message)

	rec = c.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "Alice", "password": "password1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[types.AuthView](t, rec).AccessToken)

	post := c.createPost(alice.AccessToken, "  hello  ")
	assert.Equal(t, "hello", post.Content)
	assert.Zero(t, post.LikesCount)
	assert.Zero(t, post.CommentsCount)

	likePath := fmt.Sprintf("/posts/%d/like", post.ID)

	rec = c.do(http.MethodPost, likePath, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	like := decode[types.LikeView](t, rec)
	assert.Equal(t, int64(1), like.LikesCount)
	assert.True(t, like.LikedByMe)

	rec = c.do(http.MethodPost, likePath, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	like = decode[types.LikeView](t, rec)
	assert.Zero(t, like.LikesCount)
	assert.False(t, like.LikedByMe)

	bob := c.register("bob")

	for i := 0; i < 2; i++ {
		rec = c.do(http.MethodPost, "/users/alice/follow", bob.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, types.FollowView{Following: true, FollowersCount: 1, FollowingCount: 1}, decode[types.FollowView](t, rec))
	}

	rec = c.do(http.MethodGet, "/users/alice", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[types.ProfileView](t, rec)
	assert.Equal(t, int64(1), profile.FollowersCount)
	assert.True(t, profile.IsFollowing)

	rec = c.do(http.MethodGet, "/users/alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[types.ProfileView](t, rec).IsFollowing)

	rec = c.do(http.MethodGet, "/posts/feed?following=true", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[[]types.PostView](t, rec)
	require.Len(t, feed, 1)
	assert.Equal(t, post.ID, feed[0].ID)
	assert.Equal(t, "alice", feed[0].Author.Username)
}

func TestAuthorization(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")

	t.Run("missing token", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/auth/me", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token on optional route", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/posts/feed", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = c.do(http.MethodGet, "/posts/feed", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("following feed needs a caller", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/posts/feed?following=true", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("me", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/auth/me", alice.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		me := decode[types.UserView](t, rec)
		assert.Equal(t, alice.User.ID, me.ID)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "password1"})
		require.Equal(t, http.StatusOK, rec.Code)
		token := decode[types.AuthView](t, rec).AccessToken

		rec = c.do(http.MethodPost, "/auth/logout", token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = c.do(http.MethodGet, "/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = c.do(http.MethodGet, "/auth/me", alice.AccessToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestValidation(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
	}{
		{"short username", http.MethodPost, "/auth/register", "", map[string]string{"username": "ab", "email": "ab@x.io", "password": "password1"}},
		{"padded short username", http.MethodPost, "/auth/register", "", map[string]string{"username": "  ab  ", "email": "pad@x.io", "password": "password1"}},
		{"password over 72 bytes", http.MethodPost, "/auth/register", "", map[string]string{"username": "carol", "email": "c@x.io", "password": strings.Repeat("é", 40)}},
		{"bad username characters", http.MethodPost, "/auth/register", "", map[string]string{"username": "bad name", "email": "bn@x.io", "password": "password1"}},
		{"short password", http.MethodPost, "/auth/register", "", map[string]string{"username": "carol", "email": "c@x.io", "password": "short"}},
		{"bad email", http.MethodPost, "/auth/register", "", map[string]string{"username": "carol", "email": "nope", "password": "password1"}},
		{"blank post", http.MethodPost, "/posts", alice.AccessToken, map[string]string{"content": "   "}},
		{"long post", http.MethodPost, "/posts", alice.AccessToken, map[string]string{"content": strings.Repeat("a", 1001)}},
		{"bad sex", http.MethodPut, "/users/me/profile", alice.AccessToken, map[string]string{"sex": "robot"}},
		{"bad birthday", http.MethodPut, "/users/me/profile", alice.AccessToken, map[string]string{"birthday": "31/12/1990"}},
		{"long bio", http.MethodPut, "/users/me/profile", alice.AccessToken, map[string]string{"bio": strings.Repeat("b", 501)}},
		{"limit too small", http.MethodGet, "/posts/feed?limit=0", "", nil},
		{"limit too large", http.MethodGet, "/posts/feed?limit=101", "", nil},
		{"negative skip", http.MethodGet, "/posts/feed?skip=-1", "", nil},
		{"search limit too large", http.MethodGet, "/users/search?q=a&limit=51", "", nil},
		{"missing body", http.MethodPost, "/posts", alice.AccessToken, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := c.do(tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	t.Run("padded username stored trimmed", func(t *testing.T) {
		name := strings.Repeat("d", 50)
		rec := c.do(http.MethodPost, "/auth/register", "", map[string]string{
			"username": "  " + strings.ToUpper(name) + "  ",
			"email":    "dave@x.io",
			"password": "password1",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, name, decode[types.AuthView](t, rec).User.Username)
	})

	t.Run("body over the size cap", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/posts", alice.AccessToken, map[string]string{"content": strings.Repeat("a", 2<<20)})
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("long post at the limit", func(t *testing.T) {
		post := c.createPost(alice.AccessToken, strings.Repeat("a", 1000))
		assert.Len(t, post.Content, 1000)
	})
}

func TestOwnership(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")
	bob := c.register("bob")

	post := c.createPost(alice.AccessToken, "hello")
	postPath := fmt.Sprintf("/posts/%d", post.ID)

	rec := c.do(http.MethodPut, postPath, bob.AccessToken, map[string]string{"content": "mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodDelete, postPath, bob.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodPost, "/users/bob/follow", bob.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodPost, "/users/nobody/follow", bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPut, postPath, alice.AccessToken, map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "edited", decode[types.PostView](t, rec).Content)

	rec = c.do(http.MethodPost, postPath+"/comments", bob.AccessToken, map[string]string{"content": " nice "})
	require.Equal(t, http.StatusCreated, rec.Code)
	comment := decode[types.CommentView](t, rec)
	assert.Equal(t, "nice", comment.Content)
	assert.Equal(t, "bob", comment.Author.Username)

	commentPath := fmt.Sprintf("/comments/%d", comment.ID)

	rec = c.do(http.MethodDelete, commentPath, alice.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodGet, postPath+"/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]types.CommentView](t, rec), 1)

	rec = c.do(http.MethodDelete, postPath, alice.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = c.do(http.MethodGet, postPath+"/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodDelete, commentPath, bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPost, postPath+"/like", bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileAndSearch(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")
	c.register("alicia")
	c.register("bob")

	rec := c.do(http.MethodPut, "/users/me/profile", alice.AccessToken, map[string]any{
		"display_name": "Alice A",
		"sex":          "female",
		"birthday":     "1990-12-31",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decode[types.ProfileView](t, rec)
	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Alice A", *profile.DisplayName)
	assert.Nil(t, profile.Bio)

	rec = c.do(http.MethodPut, "/users/me/profile", alice.AccessToken, map[string]any{"display_name": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	profile = decode[types.ProfileView](t, rec)
	assert.Nil(t, profile.DisplayName)
	require.NotNil(t, profile.Sex)
	assert.Equal(t, "female", *profile.Sex)

	rec = c.do(http.MethodGet, "/users/search?q=ALI", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[[]types.UserSummary](t, rec)
	require.Len(t, results, 2)
	assert.Equal(t, "alice", results[0].Username)
	assert.Equal(t, "alicia", results[1].Username)

	rec = c.do(http.MethodGet, "/users/search?q=ali", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results = decode[[]types.UserSummary](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "alicia", results[0].Username)

	rec = c.do(http.MethodGet, "/users/search?q=", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = c.do(http.MethodGet, "/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServiceEndpoints(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.Health{Status: "ok", App: appName}, decode[types.Health](t, rec))

	rec = c.do(http.MethodGet, "/openapi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BearerAuth")
	assert.Contains(t, rec.Body.String(), "toggleLike")

	rec = c.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")

	rec = c.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPatch, "/posts", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
