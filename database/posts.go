package database

import (
	"fmt"

	"cadrebook/types"

	"gorm.io/gorm"
)

// CreatePost stores already trimmed and validated content for ownerID.
func CreatePost(db *gorm.DB, ownerID uint, content string) (*types.PostView, error) {
	post := types.Post{UserID: ownerID, Content: content}
	if err := db.Omit("User").Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return getPostView(db, post.ID, ownerID)
}

// UpdatePost replaces the content of a post owned by actorID.
func UpdatePost(db *gorm.DB, postID, actorID uint, content string) (*types.PostView, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		post, err := ownedPost(tx, postID, actorID)
		if err != nil {
			return err
		}

		return tx.Model(post).Update("content", content).Error
	})
	if err != nil {
		return nil, err
	}

	return getPostView(db, postID, actorID)
}

// DeletePost removes a post owned by actorID. Its comments and likes go with it through
// the foreign key cascade.
func DeletePost(db *gorm.DB, postID, actorID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		post, err := ownedPost(tx, postID, actorID)
		if err != nil {
			return err
		}

		if err := tx.Delete(post).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}

		return nil
	})
}

func ownedPost(tx *gorm.DB, postID, actorID uint) (*types.Post, error) {
	var post types.Post
	if err := tx.Where("id = ?", postID).Limit(1).Find(&post).Error; err != nil {
		return nil, fmt.Errorf("find post %d: %w", postID, err)
	}

	if post.ID == 0 {
		return nil, ErrPostNotFound
	}

	if post.UserID != actorID {
		return nil, ErrForbidden
	}

	return &post, nil
}

// GetPost returns one post as seen by viewerID.
func GetPost(db *gorm.DB, postID, viewerID uint) (*types.PostView, error) {
	return getPostView(db, postID, viewerID)
}

func getPostView(db *gorm.DB, postID, viewerID uint) (*types.PostView, error) {
	var post types.Post
	if err := db.Preload("User").Where("id = ?", postID).Limit(1).Find(&post).Error; err != nil {
		return nil, fmt.Errorf("find post %d: %w", postID, err)
	}

	if post.ID == 0 {
		return nil, ErrPostNotFound
	}

	liked, err := likedPostIDs(db, viewerID, []uint{post.ID})
	if err != nil {
		return nil, err
	}

	view := toPostView(&post, liked)
	return &view, nil
}
