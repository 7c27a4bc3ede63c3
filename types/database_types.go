package types

import "time"

// User is an account row. FollowersCount and FollowingCount mirror the follows table and
// are only written by the follow/unfollow paths and counter repair.
type User struct {
	ID                 uint      `gorm:"primaryKey"`
	Username           string    `gorm:"size:50;uniqueIndex;not null"`
	Email              string    `gorm:"size:255;uniqueIndex;not null"`
	HashedPassword     string    `gorm:"size:255;not null"`
	CreatedAt          time.Time `gorm:"not null"`
	DisplayName        *string   `gorm:"size:100"`
	Bio                *string   `gorm:"size:500"`
	Sex                *string   `gorm:"size:32"`
	Birthday           *string   `gorm:"size:10"`
	RelationshipStatus *string   `gorm:"size:32"`
	FollowersCount     int64     `gorm:"not null;default:0"`
	FollowingCount     int64     `gorm:"not null;default:0"`
}

type Post struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"not null;index"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content       string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
	LikesCount    int64     `gorm:"not null;default:0"`
	CommentsCount int64     `gorm:"not null;default:0"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID    uint      `gorm:"not null;index"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// Follow is a directed edge: FollowerID follows FollowedID.
type Follow struct {
	ID         uint      `gorm:"primaryKey"`
	FollowerID uint      `gorm:"not null;uniqueIndex:uq_follow;index"`
	Follower   User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowedID uint      `gorm:"not null;uniqueIndex:uq_follow;index;check:chk_follow_not_self,follower_id <> followed_id"`
	Followed   User      `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"not null"`
}

// Like is the liked state itself: a row exists iff the user likes the post.
type Like struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_like_user_post"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID    uint      `gorm:"not null;uniqueIndex:uq_like_user_post;index"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"not null"`
}

// Models lists every table in migration order.
func Models() []any {
	return []any{&User{}, &Post{}, &Comment{}, &Follow{}, &Like{}}
}
