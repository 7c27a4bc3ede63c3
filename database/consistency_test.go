package database

import (
	"testing"

	"cadrebook/testutil"
	"cadrebook/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterRepair(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	_, err := Follow(db, bob.ID, "alice")
	require.NoError(t, err)
	_, err = ToggleLike(db, bob.ID, post.ID)
	require.NoError(t, err)
	_, err = AddComment(db, post.ID, bob.ID, "hi")
	require.NoError(t, err)
	requireConsistent(t, db)

	require.NoError(t, db.Model(&types.User{}).Where("id = ?", alice.ID).UpdateColumn("followers_count", 7).Error)
	require.NoError(t, db.Model(&types.Post{}).Where("id = ?", post.ID).UpdateColumns(map[string]any{
		"likes_count":    0,
		"comments_count": 3,
	}).Error)

	drift, err := CheckCounters(db)
	require.NoError(t, err)
	assert.ElementsMatch(t, []CounterDrift{
		{Table: "users", Column: "followers_count", ID: alice.ID, Stored: 7, Computed: 1},
		{Table: "posts", Column: "likes_count", ID: post.ID, Stored: 0, Computed: 1},
		{Table: "posts", Column: "comments_count", ID: post.ID, Stored: 3, Computed: 1},
	}, drift)

	fixed, err := RepairCounters(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), fixed)
	requireConsistent(t, db)

	fixed, err = RepairCounters(db)
	require.NoError(t, err)
	assert.Zero(t, fixed)
}

// TestScenario walks one account through registration, posting, liking and following.
func TestScenario(t *testing.T) {
	db := testutil.OpenDB(t)

	alice, err := Register(db, testHasher, testTokens, types.RegisterRequest{
		Username: "alice",
		Email:    "a@x.io",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, alice.AccessToken)
	assert.Equal(t, "bearer", alice.TokenType)
	assert.Equal(t, "alice", alice.User.Username)

	_, err = Register(db, testHasher, testTokens, types.RegisterRequest{
		Username: "alice",
		Email:    "other@x.io",
		Password: "password1",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = Login(db, testHasher, testTokens, "alice", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	post, err := CreatePost(db, alice.User.ID, "hello")
	require.NoError(t, err)
	assert.Zero(t, post.LikesCount)
	assert.Zero(t, post.CommentsCount)

	like, err := ToggleLike(db, alice.User.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), like.LikesCount)
	assert.True(t, like.LikedByMe)

	like, err = ToggleLike(db, alice.User.ID, post.ID)
	require.NoError(t, err)
	assert.Zero(t, like.LikesCount)
	assert.False(t, like.LikedByMe)

	bob, err := Register(db, testHasher, testTokens, types.RegisterRequest{
		Username: "bob",
		Email:    "b@x.io",
		Password: "password1",
	})
	require.NoError(t, err)

	_, err = Follow(db, bob.User.ID, "alice")
	require.NoError(t, err)
	_, err = Follow(db, bob.User.ID, "alice")
	require.NoError(t, err)

	profile, err := GetProfile(db, "alice", bob.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.FollowersCount)
	assert.True(t, profile.IsFollowing)
	requireConsistent(t, db)
}
