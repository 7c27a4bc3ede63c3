package database

import (
	"testing"

	"cadrebook/testutil"
	"cadrebook/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	db := testutil.OpenDB(t)

	users, posts, err := Seed(db, testHasher)
	require.NoError(t, err)
	assert.Equal(t, 4, users)
	assert.Equal(t, 19, posts)

	users, posts, err = Seed(db, testHasher)
	require.NoError(t, err)
	assert.Zero(t, users)
	assert.Zero(t, posts)

	var userCount, postCount int64
	require.NoError(t, db.Model(&types.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&types.Post{}).Count(&postCount).Error)
	assert.Equal(t, int64(4), userCount)
	assert.Equal(t, int64(19), postCount)

	_, err = Login(db, testHasher, testTokens, "dhruv", SeedPassword)
	require.NoError(t, err)

	profile, err := GetProfile(db, "dhruv", 0)
	require.NoError(t, err)
	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Dhruv Kanetkar", *profile.DisplayName)
	requireConsistent(t, db)
}

func TestSeedSkipsExistingUsers(t *testing.T) {
	db := testutil.OpenDB(t)
	chad := testutil.CreateUser(t, db, "chad")

	users, posts, err := Seed(db, testHasher)
	require.NoError(t, err)
	assert.Equal(t, 3, users)
	assert.Equal(t, 14, posts)

	var chadPosts int64
	require.NoError(t, db.Model(&types.Post{}).Where("user_id = ?", chad.ID).Count(&chadPosts).Error)
	assert.Zero(t, chadPosts)
}
