package database

import (
	"fmt"

	"cadrebook/types"

	"gorm.io/gorm"
)

type FeedOptions struct {
	Skip  int
	Limit int

	// Following limits the feed to authors the viewer follows. It needs a viewer.
	Following bool
}

// GetFeed returns posts newest first. viewerID is 0 for anonymous callers.
func GetFeed(db *gorm.DB, viewerID uint, opts FeedOptions) ([]types.PostView, error) {
	query := db.Model(&types.Post{})

	if opts.Following {
		if viewerID == 0 {
			return nil, ErrUnauthorized
		}

		query = query.Where("user_id IN (?)", db.Model(&types.Follow{}).Select("followed_id").Where("follower_id = ?", viewerID))
	}

	return getPosts(db, query, viewerID, opts.Skip, opts.Limit)
}

// GetUserPosts returns one author's posts newest first.
func GetUserPosts(db *gorm.DB, username string, viewerID uint, skip, limit int) ([]types.PostView, error) {
	author, err := findUserByUsername(db, username)
	if err != nil {
		return nil, err
	}

	return getPosts(db, db.Model(&types.Post{}).Where("user_id = ?", author.ID), viewerID, skip, limit)
}

// getPosts pages through query and attaches authors and the viewer's like state with
// one batched lookup each.
func getPosts(db *gorm.DB, query *gorm.DB, viewerID uint, skip, limit int) ([]types.PostView, error) {
	skip, limit = clampPage(skip, limit, 100)

	var posts []types.Post
	err := query.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	liked, err := likedPostIDs(db, viewerID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]types.PostView, len(posts))
	for i := range posts {
		out[i] = toPostView(&posts[i], liked)
	}

	return out, nil
}
