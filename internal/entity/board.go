package entity

import "time"

const (
	PubPublic  = "public"
	PubPrivate = "private"
)

// Denormalised counter columns adjustable through the repository.
const (
	BoardHeartCount    = "heart_count"
	BoardFeedbackCount = "feedback_count"
	BoardBookmarkCount = "bookmark_count"
	FeedbackHeartCount = "heart_count"
	FeedbackReplyCount = "reply_count"
)

// DbBoard is a board post. Images holds storage paths or URLs.
type DbBoard struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UID      uint        `gorm:"column:uid;index;not null" json:"uid"`
	Title    string      `gorm:"column:title;type:varchar(255)" json:"title"`
	Body     string      `gorm:"column:body;type:text" json:"body"`
	Images   StringArray `gorm:"column:images;type:text" json:"images"`
	Category string      `gorm:"column:category;type:varchar(50);index;not null" json:"category"`
	Pub      string      `gorm:"column:pub;type:varchar(20);not null;default:public" json:"pub"`
	Language string      `gorm:"column:language;type:varchar(30);default:Korean" json:"language"`

	HeartCount    int64 `gorm:"column:heart_count;not null;default:0" json:"heart_count"`
	FeedbackCount int64 `gorm:"column:feedback_count;not null;default:0" json:"feedback_count"`
	BookmarkCount int64 `gorm:"column:bookmark_count;not null;default:0" json:"bookmark_count"`

	Edited bool `gorm:"column:edited;not null;default:false" json:"edited"`

	// Set when this post was re-created from another user's post.
	OriginUserID  *uint `gorm:"column:origin_user_id" json:"origin_user_id,omitempty"`
	OriginBoardID *uint `gorm:"column:origin_board_id" json:"origin_board_id,omitempty"`
}

func (DbBoard) TableName() string {
	return "boards"
}

// DbFeedback is a top-level comment on a board post.
type DbFeedback struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BoardID uint   `gorm:"column:board_id;index;not null" json:"board_id"`
	UID     uint   `gorm:"column:uid;index;not null" json:"uid"`
	Body    string `gorm:"column:body;type:text;not null" json:"body"`

	HeartCount int64 `gorm:"column:heart_count;not null;default:0" json:"heart_count"`
	ReplyCount int64 `gorm:"column:reply_count;not null;default:0" json:"reply_count"`
	Edited     bool  `gorm:"column:edited;not null;default:false" json:"edited"`
}

func (DbFeedback) TableName() string {
	return "feedbacks"
}

// DbReply is a nested reply under a feedback.
type DbReply struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FeedbackID uint   `gorm:"column:feedback_id;index;not null" json:"feedback_id"`
	BoardID    uint   `gorm:"column:board_id;index;not null" json:"board_id"`
	UID        uint   `gorm:"column:uid;index;not null" json:"uid"`
	Body       string `gorm:"column:body;type:text;not null" json:"body"`

	HeartCount int64 `gorm:"column:heart_count;not null;default:0" json:"heart_count"`
	Edited     bool  `gorm:"column:edited;not null;default:false" json:"edited"`
}

func (DbReply) TableName() string {
	return "replies"
}

// BoardCreateRequest is the post-creation payload.
type BoardCreateRequest struct {
	Title    string   `json:"boardTitle"`
	Body     string   `json:"boardBody"`
	Images   []string `json:"boardImg"`
	Category string   `json:"category" binding:"required"`
	Pub      string   `json:"pub" binding:"required"`
	Language string   `json:"language"`
}

// BoardUpdateRequest mirrors the creation payload for edits.
type BoardUpdateRequest struct {
	Title    *string  `json:"boardTitle,omitempty"`
	Body     *string  `json:"boardBody,omitempty"`
	Images   []string `json:"boardImg,omitempty"`
	Category *string  `json:"category,omitempty"`
	Pub      *string  `json:"pub,omitempty"`
	Language *string  `json:"language,omitempty"`
}

// FeedbackRequest creates or edits a feedback or reply body.
type FeedbackRequest struct {
	Body string `json:"feedbackBody" binding:"required"`
}

// BoardQuery supports board listing and title search.
type BoardQuery struct {
	BaseParams
	Category string `json:"category" form:"category" query:"category"`
	Keyword  string `json:"q" form:"q" query:"q"`
}

// BoardListResponse pairs items with pagination metadata.
type BoardListResponse struct {
	Boards []DbBoard `json:"boards"`
	Meta   *Meta     `json:"meta"`
}
