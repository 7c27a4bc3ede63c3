package database

import (
	"fmt"

	"cadrebook/types"

	"gorm.io/gorm"
)

// Follow makes actorID follow the user named username. Following someone already
// followed changes nothing and reports the current counts.
func Follow(db *gorm.DB, actorID uint, username string) (*types.FollowView, error) {
	var view *types.FollowView

	err := db.Transaction(func(tx *gorm.DB) error {
		target, err := findUserByUsername(tx, username)
		if err != nil {
			return err
		}

		if target.ID == actorID {
			return ErrForbidden
		}

		inserted, err := insertEdge(tx, &types.Follow{FollowerID: actorID, FollowedID: target.ID})
		if err != nil {
			return fmt.Errorf("insert follow: %w", err)
		}

		if inserted {
			if _, err := increment(tx, &types.User{}, target.ID, "followers_count"); err != nil {
				return fmt.Errorf("increment followers_count: %w", err)
			}
			if _, err := increment(tx, &types.User{}, actorID, "following_count"); err != nil {
				return fmt.Errorf("increment following_count: %w", err)
			}
		}

		view, err = followState(tx, actorID, target.ID, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Unfollow removes the edge if there is one. Unfollowing someone not followed changes
// nothing and reports the current counts.
func Unfollow(db *gorm.DB, actorID uint, username string) (*types.FollowView, error) {
	var view *types.FollowView

	err := db.Transaction(func(tx *gorm.DB) error {
		target, err := findUserByUsername(tx, username)
		if err != nil {
			return err
		}

		if target.ID == actorID {
			return ErrForbidden
		}

		res := tx.Where("follower_id = ? AND followed_id = ?", actorID, target.ID).Delete(&types.Follow{})
		if res.Error != nil {
			return fmt.Errorf("delete follow: %w", res.Error)
		}

		if res.RowsAffected > 0 {
			if _, err := decrement(tx, &types.User{}, target.ID, "followers_count"); err != nil {
				return fmt.Errorf("decrement followers_count: %w", err)
			}
			if _, err := decrement(tx, &types.User{}, actorID, "following_count"); err != nil {
				return fmt.Errorf("decrement following_count: %w", err)
			}
		}

		view, err = followState(tx, actorID, target.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func followState(tx *gorm.DB, actorID, targetID uint, following bool) (*types.FollowView, error) {
	var rows []types.User
	if err := tx.Select("id", "followers_count", "following_count").Where("id IN ?", []uint{actorID, targetID}).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load follow counts: %w", err)
	}

	view := &types.FollowView{Following: following}
	for _, u := range rows {
		if u.ID == targetID {
			view.FollowersCount = u.FollowersCount
		}
		if u.ID == actorID {
			view.FollowingCount = u.FollowingCount
		}
	}

	return view, nil
}

// ListFollowers returns the users following username, newest edges first.
func ListFollowers(db *gorm.DB, username string, viewerID uint, skip, limit int) ([]types.UserSummary, error) {
	return listEdgeUsers(db, username, viewerID, skip, limit, "follower_id", "followed_id")
}

// ListFollowing returns the users username follows, newest edges first.
func ListFollowing(db *gorm.DB, username string, viewerID uint, skip, limit int) ([]types.UserSummary, error) {
	return listEdgeUsers(db, username, viewerID, skip, limit, "followed_id", "follower_id")
}

// listEdgeUsers joins users on follows.<join> for edges whose <match> column is the
// named user.
func listEdgeUsers(db *gorm.DB, username string, viewerID uint, skip, limit int, join, match string) ([]types.UserSummary, error) {
	user, err := findUserByUsername(db, username)
	if err != nil {
		return nil, err
	}

	skip, limit = clampPage(skip, limit, 100)

	var users []types.User
	err = db.Model(&types.User{}).
		Joins("JOIN follows ON follows."+join+" = users.id").
		Where("follows."+match+" = ?", user.ID).
		Order("follows.created_at DESC, follows.id DESC").
		Offset(skip).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list follow edges: %w", err)
	}

	return summaries(db, users, viewerID)
}
