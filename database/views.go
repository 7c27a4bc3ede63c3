package database

import (
	"fmt"

	"cadrebook/types"

	"gorm.io/gorm"
)

func toUserView(u *types.User) types.UserView {
	return types.UserView{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		CreatedAt:      u.CreatedAt,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}

func toProfileView(u *types.User, isFollowing bool) types.ProfileView {
	return types.ProfileView{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		CreatedAt:          u.CreatedAt,
		DisplayName:        u.DisplayName,
		Bio:                u.Bio,
		Sex:                u.Sex,
		Birthday:           u.Birthday,
		RelationshipStatus: u.RelationshipStatus,
		FollowersCount:     u.FollowersCount,
		FollowingCount:     u.FollowingCount,
		IsFollowing:        isFollowing,
	}
}

func toSummary(u *types.User, isFollowing bool) types.UserSummary {
	return types.UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		FollowersCount: u.FollowersCount,
		IsFollowing:    isFollowing,
	}
}

func toAuthor(u *types.User) *types.Author {
	if u == nil || u.ID == 0 {
		return nil
	}

	return &types.Author{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

func toPostView(p *types.Post, liked map[uint]bool) types.PostView {
	return types.PostView{
		ID:            p.ID,
		Content:       p.Content,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		LikedByMe:     liked[p.ID],
		UserID:        p.UserID,
		Author:        toAuthor(&p.User),
	}
}

func toCommentView(c *types.Comment) types.CommentView {
	return types.CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    toAuthor(&c.User),
	}
}

// likedPostIDs returns which of postIDs userID likes, in a single query.
func likedPostIDs(db *gorm.DB, userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := db.Model(&types.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load liked posts: %w", err)
	}

	for _, id := range ids {
		liked[id] = true
	}

	return liked, nil
}

// followedIDs returns which of userIDs followerID follows, in a single query.
func followedIDs(db *gorm.DB, followerID uint, userIDs []uint) (map[uint]bool, error) {
	followed := make(map[uint]bool, len(userIDs))
	if followerID == 0 || len(userIDs) == 0 {
		return followed, nil
	}

	var ids []uint
	err := db.Model(&types.Follow{}).
		Where("follower_id = ? AND followed_id IN ?", followerID, userIDs).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load followed users: %w", err)
	}

	for _, id := range ids {
		followed[id] = true
	}

	return followed, nil
}

func isFollowing(db *gorm.DB, followerID, followedID uint) (bool, error) {
	followed, err := followedIDs(db, followerID, []uint{followedID})
	if err != nil {
		return false, err
	}

	return followed[followedID], nil
}

func summaries(db *gorm.DB, users []types.User, viewerID uint) ([]types.UserSummary, error) {
	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}

	followed, err := followedIDs(db, viewerID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]types.UserSummary, len(users))
	for i := range users {
		out[i] = toSummary(&users[i], followed[users[i].ID])
	}

	return out, nil
}
