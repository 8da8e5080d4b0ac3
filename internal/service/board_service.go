package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"penlog/internal/entity"
	"penlog/internal/model"

	"gorm.io/gorm"
)

// BoardService owns posts, feedback, nested replies, and the social edges
// around them. Only the writer of a post, feedback, or reply may edit or
// delete it.
type BoardService struct {
	repo model.Repository
}

// NewBoardService creates the board service.
func NewBoardService(repo model.Repository) *BoardService {
	return &BoardService{repo: repo}
}

// CreateBoard publishes a new post.
func (s *BoardService) CreateBoard(ctx context.Context, uid uint, req entity.BoardCreateRequest) (*entity.DbBoard, error) {
	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Pub) == "" {
		return nil, fmt.Errorf("%w: category and pub are required", ErrValidation)
	}

	board := &entity.DbBoard{
		UID:      uid,
		Title:    strings.TrimSpace(req.Title),
		Body:     req.Body,
		Images:   entity.StringArray(req.Images),
		Category: req.Category,
		Pub:      req.Pub,
		Language: req.Language,
	}
	if board.Language == "" {
		board.Language = "Korean"
	}

	if err := s.repo.CreateBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// GetBoard loads a single post.
func (s *BoardService) GetBoard(ctx context.Context, boardID uint) (*entity.DbBoard, error) {
	board, err := s.repo.GetBoardByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, fmt.Errorf("%w: board %d", ErrNotFound, boardID)
	}
	return board, nil
}

// UpdateBoard edits a post; only its writer may do so. A successful edit
// marks the post as edited.
func (s *BoardService) UpdateBoard(ctx context.Context, uid, boardID uint, req entity.BoardUpdateRequest) (*entity.DbBoard, error) {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board.UID != uid {
		return nil, fmt.Errorf("%w: not the writer of board %d", ErrForbidden, boardID)
	}

	edited := true
	updates := entity.BoardUpdates{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Pub:      req.Pub,
		Language: req.Language,
		Edited:   &edited,
	}
	if req.Images != nil {
		images := entity.StringArray(req.Images)
		updates.Images = &images
	}

	if err := s.repo.UpdateBoard(ctx, boardID, updates); err != nil {
		return nil, err
	}
	return s.GetBoard(ctx, boardID)
}

// DeleteBoard removes a post; only its writer may do so.
func (s *BoardService) DeleteBoard(ctx context.Context, uid, boardID uint) error {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if board.UID != uid {
		return fmt.Errorf("%w: not the writer of board %d", ErrForbidden, boardID)
	}

	deleted, err := s.repo.DeleteBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: board %d", ErrNotFound, boardID)
	}
	return nil
}

// ListBoards returns paginated posts.
func (s *BoardService) ListBoards(ctx context.Context, params *entity.BoardQuery) ([]entity.DbBoard, *entity.Meta, error) {
	return s.repo.ListBoards(ctx, params)
}

// ListUserBoards returns every post by a user.
func (s *BoardService) ListUserBoards(ctx context.Context, uid uint) ([]entity.DbBoard, error) {
	return s.repo.ListBoardsByUser(ctx, uid)
}

// SearchBoards matches post titles against a keyword.
func (s *BoardService) SearchBoards(ctx context.Context, keyword string) ([]entity.DbBoard, error) {
	return s.repo.SearchBoards(ctx, keyword)
}

// CreateFeedback comments on a post and bumps its feedback counter.
func (s *BoardService) CreateFeedback(ctx context.Context, uid, boardID uint, body string) (*entity.DbFeedback, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: feedback body is required", ErrValidation)
	}
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return nil, err
	}

	feedback := &entity.DbFeedback{
		BoardID: boardID,
		UID:     uid,
		Body:    body,
	}
	if err := s.repo.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	if err := s.repo.AdjustBoardCounter(ctx, boardID, entity.BoardFeedbackCount, 1); err != nil {
		return nil, err
	}
	return feedback, nil
}

// UpdateFeedback edits a comment; only its writer may do so.
func (s *BoardService) UpdateFeedback(ctx context.Context, uid, feedbackID uint, body string) (*entity.DbFeedback, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: feedback body is required", ErrValidation)
	}
	feedback, err := s.repo.GetFeedbackByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, fmt.Errorf("%w: feedback %d", ErrNotFound, feedbackID)
	}
	if feedback.UID != uid {
		return nil, fmt.Errorf("%w: not the writer of feedback %d", ErrForbidden, feedbackID)
	}

	edited := true
	if err := s.repo.UpdateFeedback(ctx, feedbackID, entity.FeedbackUpdates{Body: &body, Edited: &edited}); err != nil {
		return nil, err
	}
	return s.repo.GetFeedbackByID(ctx, feedbackID)
}

// DeleteFeedback removes a comment and decrements the post counter.
func (s *BoardService) DeleteFeedback(ctx context.Context, uid, feedbackID uint) error {
	feedback, err := s.repo.GetFeedbackByID(ctx, feedbackID)
	if err != nil {
		return err
	}
	if feedback == nil {
		return fmt.Errorf("%w: feedback %d", ErrNotFound, feedbackID)
	}
	if feedback.UID != uid {
		return fmt.Errorf("%w: not the writer of feedback %d", ErrForbidden, feedbackID)
	}

	deleted, err := s.repo.DeleteFeedback(ctx, feedbackID)
	if err != nil {
		return err
	}
	if deleted {
		if err := s.repo.AdjustBoardCounter(ctx, feedback.BoardID, entity.BoardFeedbackCount, -1); err != nil {
			return err
		}
	}
	return nil
}

// ListFeedback returns the comments on a post.
func (s *BoardService) ListFeedback(ctx context.Context, boardID uint) ([]entity.DbFeedback, error) {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return nil, err
	}
	return s.repo.ListFeedbackByBoard(ctx, boardID)
}

// CreateReply nests a reply under a feedback and bumps its reply counter.
func (s *BoardService) CreateReply(ctx context.Context, uid, feedbackID uint, body string) (*entity.DbReply, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: reply body is required", ErrValidation)
	}
	feedback, err := s.repo.GetFeedbackByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, fmt.Errorf("%w: feedback %d", ErrNotFound, feedbackID)
	}

	reply := &entity.DbReply{
		FeedbackID: feedbackID,
		BoardID:    feedback.BoardID,
		UID:        uid,
		Body:       body,
	}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	if err := s.repo.AdjustFeedbackCounter(ctx, feedbackID, entity.FeedbackReplyCount, 1); err != nil {
		return nil, err
	}
	return reply, nil
}

// UpdateReply edits a reply; only its writer may do so.
func (s *BoardService) UpdateReply(ctx context.Context, uid, replyID uint, body string) (*entity.DbReply, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: reply body is required", ErrValidation)
	}
	reply, err := s.repo.GetReplyByID(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, fmt.Errorf("%w: reply %d", ErrNotFound, replyID)
	}
	if reply.UID != uid {
		return nil, fmt.Errorf("%w: not the writer of reply %d", ErrForbidden, replyID)
	}

	edited := true
	if err := s.repo.UpdateReply(ctx, replyID, entity.FeedbackUpdates{Body: &body, Edited: &edited}); err != nil {
		return nil, err
	}
	return s.repo.GetReplyByID(ctx, replyID)
}

// DeleteReply removes a reply and decrements the feedback counter.
func (s *BoardService) DeleteReply(ctx context.Context, uid, replyID uint) error {
	reply, err := s.repo.GetReplyByID(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return fmt.Errorf("%w: reply %d", ErrNotFound, replyID)
	}
	if reply.UID != uid {
		return fmt.Errorf("%w: not the writer of reply %d", ErrForbidden, replyID)
	}

	deleted, err := s.repo.DeleteReply(ctx, replyID)
	if err != nil {
		return err
	}
	if deleted {
		if err := s.repo.AdjustFeedbackCounter(ctx, reply.FeedbackID, entity.FeedbackReplyCount, -1); err != nil {
			return err
		}
	}
	return nil
}

// ListReplies returns the replies under a feedback.
func (s *BoardService) ListReplies(ctx context.Context, feedbackID uint) ([]entity.DbReply, error) {
	feedback, err := s.repo.GetFeedbackByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, fmt.Errorf("%w: feedback %d", ErrNotFound, feedbackID)
	}
	return s.repo.ListRepliesByFeedback(ctx, feedbackID)
}

// Like records a heart on a board, feedback, or reply and bumps the target
// counter. Liking the same target twice reports ErrAlreadyExists.
func (s *BoardService) Like(ctx context.Context, uid uint, targetType string, targetID uint) error {
	if err := s.checkLikeTarget(ctx, targetType, targetID); err != nil {
		return err
	}

	existing, err := s.repo.GetLike(ctx, uid, targetType, targetID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: already liked", ErrAlreadyExists)
	}

	like := &entity.DbLike{UID: uid, TargetType: targetType, TargetID: targetID}
	if err := s.repo.CreateLike(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: already liked", ErrAlreadyExists)
		}
		return err
	}
	return s.adjustHeartCounter(ctx, targetType, targetID, 1)
}

// Unlike removes a heart; removing a heart that was never set is a no-op
// for the counters and reports ErrNotFound.
func (s *BoardService) Unlike(ctx context.Context, uid uint, targetType string, targetID uint) error {
	if err := s.checkLikeTarget(ctx, targetType, targetID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteLike(ctx, uid, targetType, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: like", ErrNotFound)
	}
	return s.adjustHeartCounter(ctx, targetType, targetID, -1)
}

// ListLikes returns the hearts a user set, optionally narrowed to one
// target type.
func (s *BoardService) ListLikes(ctx context.Context, uid uint, targetType string) ([]entity.DbLike, error) {
	switch targetType {
	case "", entity.LikeTargetBoard, entity.LikeTargetFeedback, entity.LikeTargetReply:
	default:
		return nil, fmt.Errorf("%w: unknown like target %q", ErrValidation, targetType)
	}
	return s.repo.ListLikesByUser(ctx, uid, targetType)
}

// CountLikes reports how many hearts a target currently holds.
func (s *BoardService) CountLikes(ctx context.Context, targetType string, targetID uint) (int64, error) {
	if err := s.checkLikeTarget(ctx, targetType, targetID); err != nil {
		return 0, err
	}
	return s.repo.CountLikes(ctx, targetType, targetID)
}

func (s *BoardService) checkLikeTarget(ctx context.Context, targetType string, targetID uint) error {
	switch targetType {
	case entity.LikeTargetBoard:
		_, err := s.GetBoard(ctx, targetID)
		return err
	case entity.LikeTargetFeedback:
		feedback, err := s.repo.GetFeedbackByID(ctx, targetID)
		if err != nil {
			return err
		}
		if feedback == nil {
			return fmt.Errorf("%w: feedback %d", ErrNotFound, targetID)
		}
		return nil
	case entity.LikeTargetReply:
		reply, err := s.repo.GetReplyByID(ctx, targetID)
		if err != nil {
			return err
		}
		if reply == nil {
			return fmt.Errorf("%w: reply %d", ErrNotFound, targetID)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown like target %q", ErrValidation, targetType)
	}
}

func (s *BoardService) adjustHeartCounter(ctx context.Context, targetType string, targetID uint, delta int) error {
	switch targetType {
	case entity.LikeTargetBoard:
		return s.repo.AdjustBoardCounter(ctx, targetID, entity.BoardHeartCount, delta)
	case entity.LikeTargetFeedback:
		return s.repo.AdjustFeedbackCounter(ctx, targetID, entity.FeedbackHeartCount, delta)
	case entity.LikeTargetReply:
		// Reply hearts only live on the like edge; replies carry no
		// denormalised counter adjustments beyond their own row.
		return nil
	default:
		return fmt.Errorf("%w: unknown like target %q", ErrValidation, targetType)
	}
}

// Bookmark saves a post for a user and bumps the post counter.
func (s *BoardService) Bookmark(ctx context.Context, uid, boardID uint) error {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return err
	}

	existing, err := s.repo.GetBookmark(ctx, uid, boardID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: already bookmarked", ErrAlreadyExists)
	}

	if err := s.repo.CreateBookmark(ctx, &entity.DbBookmark{UID: uid, BoardID: boardID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: already bookmarked", ErrAlreadyExists)
		}
		return err
	}
	return s.repo.AdjustBoardCounter(ctx, boardID, entity.BoardBookmarkCount, 1)
}

// Unbookmark removes a saved post.
func (s *BoardService) Unbookmark(ctx context.Context, uid, boardID uint) error {
	deleted, err := s.repo.DeleteBookmark(ctx, uid, boardID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: bookmark", ErrNotFound)
	}
	return s.repo.AdjustBoardCounter(ctx, boardID, entity.BoardBookmarkCount, -1)
}

// ListBookmarks returns a user's saved posts.
func (s *BoardService) ListBookmarks(ctx context.Context, uid uint) ([]entity.DbBookmark, error) {
	return s.repo.ListBookmarksByUser(ctx, uid)
}

// Follow makes uid follow target and moves both counters.
func (s *BoardService) Follow(ctx context.Context, uid, targetUID uint) error {
	if uid == targetUID {
		return fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	}
	target, err := s.repo.GetUserByID(ctx, targetUID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: user %d", ErrAccountNotFound, targetUID)
	}

	existing, err := s.repo.GetFollow(ctx, uid, targetUID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: already following", ErrAlreadyExists)
	}

	if err := s.repo.CreateFollow(ctx, &entity.DbFollow{UID: uid, TargetUID: targetUID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: already following", ErrAlreadyExists)
		}
		return err
	}
	return s.repo.AdjustFollowCounts(ctx, uid, targetUID, 1)
}

// Unfollow removes the follow edge and moves both counters back.
func (s *BoardService) Unfollow(ctx context.Context, uid, targetUID uint) error {
	deleted, err := s.repo.DeleteFollow(ctx, uid, targetUID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: follow", ErrNotFound)
	}
	return s.repo.AdjustFollowCounts(ctx, uid, targetUID, -1)
}
