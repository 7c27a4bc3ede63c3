package database

import (
	"fmt"

	"cadrebook/types"

	"gorm.io/gorm"
)

// GetComments lists a post's comments oldest first.
func GetComments(db *gorm.DB, postID uint) ([]types.CommentView, error) {
	if err := postExists(db, postID); err != nil {
		return nil, err
	}

	var comments []types.Comment
	err := db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]types.CommentView, len(comments))
	for i := range comments {
		out[i] = toCommentView(&comments[i])
	}

	return out, nil
}

// AddComment stores already trimmed and validated content under postID.
func AddComment(db *gorm.DB, postID, actorID uint, content string) (*types.CommentView, error) {
	comment := types.Comment{UserID: actorID, PostID: postID, Content: content}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}

		if err := tx.Omit("User", "Post").Create(&comment).Error; err != nil {
			return fmt.Errorf("create comment: %w", err)
		}

		if _, err := increment(tx, &types.Post{}, postID, "comments_count"); err != nil {
			return fmt.Errorf("increment comments_count: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	author, err := findUserByID(db, actorID)
	if err != nil {
		return nil, err
	}

	comment.User = *author
	view := toCommentView(&comment)
	return &view, nil
}

// DeleteComment removes a comment written by actorID. If the parent post is already
// gone there is no count left to fix, and the delete still succeeds.
func DeleteComment(db *gorm.DB, commentID, actorID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var comment types.Comment
		if err := tx.Where("id = ?", commentID).Limit(1).Find(&comment).Error; err != nil {
			return fmt.Errorf("find comment %d: %w", commentID, err)
		}

		if comment.ID == 0 {
			return ErrCommentNotFound
		}

		if comment.UserID != actorID {
			return ErrForbidden
		}

		res := tx.Delete(&comment)
		if res.Error != nil {
			return fmt.Errorf("delete comment: %w", res.Error)
		}

		if res.RowsAffected > 0 {
			if _, err := decrement(tx, &types.Post{}, comment.PostID, "comments_count"); err != nil {
				return fmt.Errorf("decrement comments_count: %w", err)
			}
		}

		return nil
	})
}
