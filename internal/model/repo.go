package model

import (
	"context"

	"penlog/internal/entity"
)

// Repository is the persistence contract for accounts, boards, and social
// data. Lookups report a miss as a nil result with a nil error; mutations
// surface store failures directly. Each call is an independent store
// operation; there is no cross-call transaction.
type Repository interface {
	// Accounts
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserBySnsID(ctx context.Context, snsID, snsType string) (*entity.DbUser, error)
	GetUserByEmailAndToken(ctx context.Context, email, token string) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	DeleteUser(ctx context.Context, id uint) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
	AdjustFollowCounts(ctx context.Context, followerID, followedID uint, delta int) error

	// Boards
	CreateBoard(ctx context.Context, board *entity.DbBoard) error
	GetBoardByID(ctx context.Context, id uint) (*entity.DbBoard, error)
	UpdateBoard(ctx context.Context, id uint, updates entity.BoardUpdates) error
	DeleteBoard(ctx context.Context, id uint) (bool, error)
	ListBoards(ctx context.Context, params *entity.BoardQuery) ([]entity.DbBoard, *entity.Meta, error)
	ListBoardsByUser(ctx context.Context, uid uint) ([]entity.DbBoard, error)
	SearchBoards(ctx context.Context, keyword string) ([]entity.DbBoard, error)
	AdjustBoardCounter(ctx context.Context, boardID uint, column string, delta int) error

	// Feedback and replies
	CreateFeedback(ctx context.Context, feedback *entity.DbFeedback) error
	GetFeedbackByID(ctx context.Context, id uint) (*entity.DbFeedback, error)
	UpdateFeedback(ctx context.Context, id uint, updates entity.FeedbackUpdates) error
	DeleteFeedback(ctx context.Context, id uint) (bool, error)
	ListFeedbackByBoard(ctx context.Context, boardID uint) ([]entity.DbFeedback, error)
	AdjustFeedbackCounter(ctx context.Context, feedbackID uint, column string, delta int) error
	CreateReply(ctx context.Context, reply *entity.DbReply) error
	GetReplyByID(ctx context.Context, id uint) (*entity.DbReply, error)
	UpdateReply(ctx context.Context, id uint, updates entity.FeedbackUpdates) error
	DeleteReply(ctx context.Context, id uint) (bool, error)
	ListRepliesByFeedback(ctx context.Context, feedbackID uint) ([]entity.DbReply, error)

	// Likes, bookmarks, follows
	CreateLike(ctx context.Context, like *entity.DbLike) error
	DeleteLike(ctx context.Context, uid uint, targetType string, targetID uint) (bool, error)
	GetLike(ctx context.Context, uid uint, targetType string, targetID uint) (*entity.DbLike, error)
	ListLikesByUser(ctx context.Context, uid uint, targetType string) ([]entity.DbLike, error)
	CountLikes(ctx context.Context, targetType string, targetID uint) (int64, error)
	CreateBookmark(ctx context.Context, bookmark *entity.DbBookmark) error
	DeleteBookmark(ctx context.Context, uid, boardID uint) (bool, error)
	GetBookmark(ctx context.Context, uid, boardID uint) (*entity.DbBookmark, error)
	ListBookmarksByUser(ctx context.Context, uid uint) ([]entity.DbBookmark, error)
	CreateFollow(ctx context.Context, follow *entity.DbFollow) error
	DeleteFollow(ctx context.Context, uid, targetUID uint) (bool, error)
	GetFollow(ctx context.Context, uid, targetUID uint) (*entity.DbFollow, error)
	ListFollowers(ctx context.Context, uid uint) ([]entity.DbFollow, error)
	ListFollowing(ctx context.Context, uid uint) ([]entity.DbFollow, error)
}
