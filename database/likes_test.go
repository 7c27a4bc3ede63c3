package database

import (
	"sync"
	"testing"

	"cadrebook/testutil"
	"cadrebook/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestToggleLike(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	view, err := ToggleLike(db, bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, types.LikeView{PostID: post.ID, LikesCount: 1, LikedByMe: true}, *view)
	requireConsistent(t, db)

	view, err = ToggleLike(db, alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, types.LikeView{PostID: post.ID, LikesCount: 2, LikedByMe: true}, *view)

	view, err = ToggleLike(db, bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, types.LikeView{PostID: post.ID, LikesCount: 1, LikedByMe: false}, *view)
	requireConsistent(t, db)

	_, err = ToggleLike(db, bob.ID, post.ID+100)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestToggleLikeTwiceRestores(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	for _, startLiked := range []bool{false, true} {
		before, err := GetPost(db, post.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, startLiked, before.LikedByMe)

		_, err = ToggleLike(db, alice.ID, post.ID)
		require.NoError(t, err)
		_, err = ToggleLike(db, alice.ID, post.ID)
		require.NoError(t, err)

		after, err := GetPost(db, post.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, before.LikesCount, after.LikesCount)
		assert.Equal(t, before.LikedByMe, after.LikedByMe)

		// move to the liked state for the second round
		if !startLiked {
			_, err = ToggleLike(db, alice.ID, post.ID)
			require.NoError(t, err)
		}
	}
}

func TestToggleLikeConcurrentUsers(t *testing.T) {
	for name, open := range map[string]func(testing.TB) *gorm.DB{
		"single connection": testutil.OpenDB,
		"pooled":            testutil.OpenFileDB,
	} {
		t.Run(name, func(t *testing.T) {
			testToggleLikeConcurrentUsers(t, open(t))
		})
	}
}

func testToggleLikeConcurrentUsers(t *testing.T, db *gorm.DB) {
	owner := testutil.CreateUser(t, db, "owner")
	post := testutil.CreatePost(t, db, owner.ID, "popular")

	var users []uint
	for _, n := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		users = append(users, testutil.CreateUser(t, db, n).ID)
	}

	var wg sync.WaitGroup
	for _, id := range users {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := ToggleLike(db, id, post.ID)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	view, err := GetPost(db, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(len(users)), view.LikesCount)
	requireConsistent(t, db)
}
