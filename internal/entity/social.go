package entity

import "time"

const (
	LikeTargetBoard    = "board"
	LikeTargetFeedback = "feedback"
	LikeTargetReply    = "reply"
)

// DbLike records one user liking one target. The unique index makes a
// duplicate like a store-level conflict rather than a double count.
type DbLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UID        uint   `gorm:"column:uid;uniqueIndex:idx_like,priority:1;not null" json:"uid"`
	TargetType string `gorm:"column:target_type;type:varchar(20);uniqueIndex:idx_like,priority:2;not null" json:"target_type"`
	TargetID   uint   `gorm:"column:target_id;uniqueIndex:idx_like,priority:3;not null" json:"target_id"`
}

func (DbLike) TableName() string {
	return "likes"
}

// DbBookmark marks a board saved by a user.
type DbBookmark struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UID     uint `gorm:"column:uid;uniqueIndex:idx_bookmark,priority:1;not null" json:"uid"`
	BoardID uint `gorm:"column:board_id;uniqueIndex:idx_bookmark,priority:2;not null" json:"board_id"`
}

func (DbBookmark) TableName() string {
	return "bookmarks"
}

// DbFollow records UID following TargetUID.
type DbFollow struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UID       uint `gorm:"column:uid;uniqueIndex:idx_follow,priority:1;not null" json:"uid"`
	TargetUID uint `gorm:"column:target_uid;uniqueIndex:idx_follow,priority:2;not null" json:"target_uid"`
}

func (DbFollow) TableName() string {
	return "follows"
}

// LikeRequest targets a board, feedback, or reply.
type LikeRequest struct {
	TargetType string `json:"targetType" binding:"required"`
	TargetID   uint   `json:"targetId" binding:"required"`
}

// BookmarkRequest targets a board.
type BookmarkRequest struct {
	BoardID uint `json:"boardId" binding:"required"`
}

// FollowRequest targets another user.
type FollowRequest struct {
	TargetUserID uint `json:"targetUserId" binding:"required"`
}
