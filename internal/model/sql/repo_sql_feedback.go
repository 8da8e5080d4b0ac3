package sql

import (
	"context"
	"fmt"

	"penlog/internal/entity"

	"gorm.io/gorm"
)

// CreateFeedback persists a new comment.
func (r *GormRepository) CreateFeedback(ctx context.Context, feedback *entity.DbFeedback) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if feedback == nil {
		return fmt.Errorf("feedback is nil")
	}
	return r.db.WithContext(ctx).Create(feedback).Error
}

// GetFeedbackByID loads a comment. A miss yields (nil, nil).
func (r *GormRepository) GetFeedbackByID(ctx context.Context, id uint) (*entity.DbFeedback, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid feedback id")
	}
	var feedback entity.DbFeedback
	if err := r.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return nil, absent(err)
	}
	return &feedback, nil
}

// UpdateFeedback applies a partial update.
func (r *GormRepository) UpdateFeedback(ctx context.Context, id uint, updates entity.FeedbackUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid feedback id")
	}
	m := updates.ToMap()
	if len(m) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbFeedback{}).Where("id = ?", id).Updates(m).Error
}

// DeleteFeedback removes a comment.
func (r *GormRepository) DeleteFeedback(ctx context.Context, id uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return false, fmt.Errorf("invalid feedback id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbFeedback{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListFeedbackByBoard returns the comments on a post, oldest first.
func (r *GormRepository) ListFeedbackByBoard(ctx context.Context, boardID uint) ([]entity.DbFeedback, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var feedbacks []entity.DbFeedback
	if err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("id ASC").Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// AdjustFeedbackCounter moves a feedback counter by delta.
func (r *GormRepository) AdjustFeedbackCounter(ctx context.Context, feedbackID uint, column string, delta int) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	switch column {
	case entity.FeedbackHeartCount, entity.FeedbackReplyCount:
	default:
		return fmt.Errorf("unsupported feedback counter: %s", column)
	}
	return r.db.WithContext(ctx).Model(&entity.DbFeedback{}).Where("id = ?", feedbackID).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

// CreateReply persists a nested reply.
func (r *GormRepository) CreateReply(ctx context.Context, reply *entity.DbReply) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if reply == nil {
		return fmt.Errorf("reply is nil")
	}
	return r.db.WithContext(ctx).Create(reply).Error
}

// GetReplyByID loads a reply. A miss yields (nil, nil).
func (r *GormRepository) GetReplyByID(ctx context.Context, id uint) (*entity.DbReply, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid reply id")
	}
	var reply entity.DbReply
	if err := r.db.WithContext(ctx).First(&reply, id).Error; err != nil {
		return nil, absent(err)
	}
	return &reply, nil
}

// UpdateReply applies a partial update.
func (r *GormRepository) UpdateReply(ctx context.Context, id uint, updates entity.FeedbackUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid reply id")
	}
	m := updates.ToMap()
	if len(m) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbReply{}).Where("id = ?", id).Updates(m).Error
}

// DeleteReply removes a reply.
func (r *GormRepository) DeleteReply(ctx context.Context, id uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return false, fmt.Errorf("invalid reply id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbReply{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListRepliesByFeedback returns the replies under a comment, oldest first.
func (r *GormRepository) ListRepliesByFeedback(ctx context.Context, feedbackID uint) ([]entity.DbReply, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var replies []entity.DbReply
	if err := r.db.WithContext(ctx).Where("feedback_id = ?", feedbackID).Order("id ASC").Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}
