package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cadrebook/database"
	"cadrebook/state"
	"cadrebook/testutil"
	"cadrebook/types"
	"cadrebook/uapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	testutil.SetupState(t)
	Setup()

	cases := []struct {
		err    error
		status int
	}{
		{database.ErrUserNotFound, http.StatusNotFound},
		{database.ErrPostNotFound, http.StatusNotFound},
		{database.ErrUsernameTaken, http.StatusConflict},
		{database.ErrEmailTaken, http.StatusConflict},
		{database.ErrUnauthorized, http.StatusUnauthorized},
		{database.ErrInvalidCredentials, http.StatusUnauthorized},
		{database.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", database.ErrCommentNotFound), http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			resp := ErrorResponse(tc.err)
			assert.Equal(t, tc.status, resp.Status)

			if body, ok := resp.Json.(types.ApiError); ok {
				var dbErr *database.Error
				require.True(t, errors.As(tc.err, &dbErr))
				assert.Equal(t, dbErr.Message, body.Message)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	db, _ := testutil.SetupState(t)
	Setup()

	user := testutil.CreateUser(t, db, "alice")
	token, err := state.Tokens.Issue(user.ID)
	require.NoError(t, err)

	required := uapi.Route{Auth: []uapi.AuthType{{Type: "user"}}}
	optional := uapi.Route{Auth: []uapi.AuthType{{Type: "user"}}, AuthOptional: true}

	request := func(header string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		return req
	}

	t.Run("public route", func(t *testing.T) {
		data, _, ok := Authorize(uapi.Route{}, request("Bearer garbage"))
		assert.True(t, ok)
		assert.False(t, data.Authorized)
	})

	t.Run("missing header", func(t *testing.T) {
		_, resp, ok := Authorize(required, request(""))
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, resp.Status)

		data, _, ok := Authorize(optional, request(""))
		assert.True(t, ok)
		assert.Zero(t, data.ID)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, _, ok := Authorize(required, request("Basic "+token))
		assert.False(t, ok)
	})

	t.Run("valid token", func(t *testing.T) {
		data, _, ok := Authorize(required, request("Bearer "+token))
		require.True(t, ok)
		assert.True(t, data.Authorized)
		assert.Equal(t, user.ID, data.ID)
		assert.NotEmpty(t, data.TokenID)
		assert.True(t, data.ExpiresAt.After(time.Now()))
	})

	t.Run("deleted account", func(t *testing.T) {
		ghost, err := state.Tokens.Issue(user.ID + 100)
		require.NoError(t, err)

		_, _, ok := Authorize(optional, request("Bearer "+ghost))
		assert.False(t, ok)
	})

	t.Run("revoked token", func(t *testing.T) {
		claims, err := state.Tokens.Parse(token)
		require.NoError(t, err)
		require.NoError(t, state.Revocations.Revoke(state.Context, claims.ID, claims.ExpiresAt.Time))

		_, resp, ok := Authorize(required, request("Bearer "+token))
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})
}
