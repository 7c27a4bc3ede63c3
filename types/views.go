package types

import "time"

// UserView is the caller's own account. It never carries the password hash.
type UserView struct {
	ID             uint      `json:"id" description:"User ID"`
	Username       string    `json:"username" description:"Lowercased username"`
	Email          string    `json:"email" description:"Account email"`
	CreatedAt      time.Time `json:"created_at" description:"Account creation time"`
	FollowersCount int64     `json:"followers_count" description:"Number of followers"`
	FollowingCount int64     `json:"following_count" description:"Number of users followed"`
}

type AuthView struct {
	AccessToken string   `json:"access_token" description:"Bearer token for the Authorization header"`
	TokenType   string   `json:"token_type" description:"Always bearer"`
	User        UserView `json:"user" description:"The authenticated user"`
}

type ProfileView struct {
	ID                 uint      `json:"id" description:"User ID"`
	Username           string    `json:"username" description:"Lowercased username"`
	Email              string    `json:"email" description:"Account email"`
	CreatedAt          time.Time `json:"created_at" description:"Account creation time"`
	DisplayName        *string   `json:"display_name" description:"Display name"`
	Bio                *string   `json:"bio" description:"Profile bio"`
	Sex                *string   `json:"sex" description:"Sex"`
	Birthday           *string   `json:"birthday" description:"Birthday (YYYY-MM-DD)"`
	RelationshipStatus *string   `json:"relationship_status" description:"Relationship status"`
	FollowersCount     int64     `json:"followers_count" description:"Number of followers"`
	FollowingCount     int64     `json:"following_count" description:"Number of users followed"`
	IsFollowing        bool      `json:"is_following" description:"Whether the viewer follows this user"`
}

// UserSummary is a user as it appears in search results and follow lists.
type UserSummary struct {
	ID             uint    `json:"id" description:"User ID"`
	Username       string  `json:"username" description:"Lowercased username"`
	DisplayName    *string `json:"display_name" description:"Display name"`
	FollowersCount int64   `json:"followers_count" description:"Number of followers"`
	IsFollowing    bool    `json:"is_following" description:"Whether the viewer follows this user"`
}

type Author struct {
	ID          uint    `json:"id" description:"User ID"`
	Username    string  `json:"username" description:"Lowercased username"`
	DisplayName *string `json:"display_name" description:"Display name"`
}

type PostView struct {
	ID            uint      `json:"id" description:"Post ID"`
	Content       string    `json:"content" description:"Post content"`
	CreatedAt     time.Time `json:"created_at" description:"Creation time"`
	UpdatedAt     time.Time `json:"updated_at" description:"Last edit time"`
	LikesCount    int64     `json:"likes_count" description:"Number of likes"`
	CommentsCount int64     `json:"comments_count" description:"Number of comments"`
	LikedByMe     bool      `json:"liked_by_me" description:"Whether the viewer likes this post"`
	UserID        uint      `json:"user_id" description:"Author ID"`
	Author        *Author   `json:"author" description:"Author summary"`
}

type CommentView struct {
	ID        uint      `json:"id" description:"Comment ID"`
	PostID    uint      `json:"post_id" description:"Parent post ID"`
	UserID    uint      `json:"user_id" description:"Author ID"`
	Content   string    `json:"content" description:"Comment content"`
	CreatedAt time.Time `json:"created_at" description:"Creation time"`
	Author    *Author   `json:"author" description:"Author summary"`
}

type FollowView struct {
	Following      bool  `json:"following" description:"Whether the caller now follows the target"`
	FollowersCount int64 `json:"followers_count" description:"Target's follower count"`
	FollowingCount int64 `json:"following_count" description:"Caller's following count"`
}

type LikeView struct {
	PostID     uint  `json:"post_id" description:"Post ID"`
	LikesCount int64 `json:"likes_count" description:"Number of likes after the toggle"`
	LikedByMe  bool  `json:"liked_by_me" description:"Whether the caller now likes the post"`
}
