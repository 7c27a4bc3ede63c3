package database

import (
	"fmt"

	"cadrebook/types"

	"gorm.io/gorm"
)

// ToggleLike flips whether userID likes postID: calling it twice restores the
// original state. Under a concurrent toggle the row delete/insert decides, so the count
// only moves when a row actually went away or came in.
func ToggleLike(db *gorm.DB, userID, postID uint) (*types.LikeView, error) {
	view := &types.LikeView{PostID: postID}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&types.Like{})
		if res.Error != nil {
			return fmt.Errorf("delete like: %w", res.Error)
		}

		if res.RowsAffected > 0 {
			if _, err := decrement(tx, &types.Post{}, postID, "likes_count"); err != nil {
				return fmt.Errorf("decrement likes_count: %w", err)
			}
			view.LikedByMe = false
		} else {
			inserted, err := insertEdge(tx, &types.Like{UserID: userID, PostID: postID})
			if err != nil {
				return fmt.Errorf("insert like: %w", err)
			}
			if inserted {
				if _, err := increment(tx, &types.Post{}, postID, "likes_count"); err != nil {
					return fmt.Errorf("increment likes_count: %w", err)
				}
			}
			view.LikedByMe = true
		}

		var post types.Post
		if err := tx.Select("id", "likes_count").Where("id = ?", postID).Take(&post).Error; err != nil {
			return fmt.Errorf("load likes_count: %w", err)
		}

		view.LikesCount = post.LikesCount
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func postExists(tx *gorm.DB, postID uint) error {
	var count int64
	if err := tx.Model(&types.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return fmt.Errorf("find post %d: %w", postID, err)
	}

	if count == 0 {
		return ErrPostNotFound
	}

	return nil
}
