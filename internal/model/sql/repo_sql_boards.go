package sql

import (
	"context"
	"fmt"
	"strings"

	"penlog/internal/entity"

	"gorm.io/gorm"
)

// CreateBoard persists a new post.
func (r *GormRepository) CreateBoard(ctx context.Context, board *entity.DbBoard) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if board == nil {
		return fmt.Errorf("board is nil")
	}
	return r.db.WithContext(ctx).Create(board).Error
}

// GetBoardByID loads a post. A miss yields (nil, nil).
func (r *GormRepository) GetBoardByID(ctx context.Context, id uint) (*entity.DbBoard, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid board id")
	}
	var board entity.DbBoard
	if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
		return nil, absent(err)
	}
	return &board, nil
}

// UpdateBoard applies a partial update.
func (r *GormRepository) UpdateBoard(ctx context.Context, id uint, updates entity.BoardUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid board id")
	}
	m := updates.ToMap()
	if len(m) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbBoard{}).Where("id = ?", id).Updates(m).Error
}

// DeleteBoard removes a post.
func (r *GormRepository) DeleteBoard(ctx context.Context, id uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return false, fmt.Errorf("invalid board id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbBoard{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListBoards returns paginated posts, optionally filtered by category.
func (r *GormRepository) ListBoards(ctx context.Context, params *entity.BoardQuery) ([]entity.DbBoard, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbBoard{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.Category); trimmed != "" {
			query = query.Where("category = ?", trimmed)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 20
	if params != nil {
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var boards []entity.DbBoard
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&boards).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return boards, meta, nil
}

// ListBoardsByUser returns every post written by the user.
func (r *GormRepository) ListBoardsByUser(ctx context.Context, uid uint) ([]entity.DbBoard, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var boards []entity.DbBoard
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).Order("id DESC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// SearchBoards matches post titles against a keyword.
func (r *GormRepository) SearchBoards(ctx context.Context, keyword string) ([]entity.DbBoard, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return []entity.DbBoard{}, nil
	}
	kw := "%" + strings.ToLower(trimmed) + "%"
	var boards []entity.DbBoard
	if err := r.db.WithContext(ctx).Where("LOWER(title) LIKE ?", kw).
		Order("created_at ASC, heart_count ASC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// AdjustBoardCounter moves one of the denormalised counters by delta in a
// single statement.
func (r *GormRepository) AdjustBoardCounter(ctx context.Context, boardID uint, column string, delta int) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	switch column {
	case entity.BoardHeartCount, entity.BoardFeedbackCount, entity.BoardBookmarkCount:
	default:
		return fmt.Errorf("unsupported board counter: %s", column)
	}
	return r.db.WithContext(ctx).Model(&entity.DbBoard{}).Where("id = ?", boardID).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}
