package sql

import (
	"context"
	"fmt"

	"penlog/internal/entity"
)

// CreateLike persists a like. The unique index turns a duplicate into a
// gorm.ErrDuplicatedKey.
func (r *GormRepository) CreateLike(ctx context.Context, like *entity.DbLike) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if like == nil {
		return fmt.Errorf("like is nil")
	}
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike removes a like edge.
func (r *GormRepository) DeleteLike(ctx context.Context, uid uint, targetType string, targetID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).
		Where("uid = ? AND target_type = ? AND target_id = ?", uid, targetType, targetID).
		Delete(&entity.DbLike{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetLike loads a like edge. A miss yields (nil, nil).
func (r *GormRepository) GetLike(ctx context.Context, uid uint, targetType string, targetID uint) (*entity.DbLike, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var like entity.DbLike
	if err := r.db.WithContext(ctx).
		Where("uid = ? AND target_type = ? AND target_id = ?", uid, targetType, targetID).
		First(&like).Error; err != nil {
		return nil, absent(err)
	}
	return &like, nil
}

// ListLikesByUser returns the hearts a user set, newest first. An empty
// targetType lists across all target types.
func (r *GormRepository) ListLikesByUser(ctx context.Context, uid uint, targetType string) ([]entity.DbLike, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Where("uid = ?", uid)
	if targetType != "" {
		query = query.Where("target_type = ?", targetType)
	}
	var likes []entity.DbLike
	if err := query.Order("id DESC").Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// CountLikes reports how many hearts a target currently holds.
func (r *GormRepository) CountLikes(ctx context.Context, targetType string, targetID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbLike{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateBookmark persists a bookmark.
func (r *GormRepository) CreateBookmark(ctx context.Context, bookmark *entity.DbBookmark) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if bookmark == nil {
		return fmt.Errorf("bookmark is nil")
	}
	return r.db.WithContext(ctx).Create(bookmark).Error
}

// DeleteBookmark removes a bookmark.
func (r *GormRepository) DeleteBookmark(ctx context.Context, uid, boardID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).
		Where("uid = ? AND board_id = ?", uid, boardID).
		Delete(&entity.DbBookmark{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetBookmark loads a bookmark. A miss yields (nil, nil).
func (r *GormRepository) GetBookmark(ctx context.Context, uid, boardID uint) (*entity.DbBookmark, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var bookmark entity.DbBookmark
	if err := r.db.WithContext(ctx).
		Where("uid = ? AND board_id = ?", uid, boardID).
		First(&bookmark).Error; err != nil {
		return nil, absent(err)
	}
	return &bookmark, nil
}

// ListBookmarksByUser returns a user's bookmarks, newest first.
func (r *GormRepository) ListBookmarksByUser(ctx context.Context, uid uint) ([]entity.DbBookmark, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var bookmarks []entity.DbBookmark
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).Order("id DESC").Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// CreateFollow persists a follow edge.
func (r *GormRepository) CreateFollow(ctx context.Context, follow *entity.DbFollow) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if follow == nil {
		return fmt.Errorf("follow is nil")
	}
	return r.db.WithContext(ctx).Create(follow).Error
}

// DeleteFollow removes a follow edge.
func (r *GormRepository) DeleteFollow(ctx context.Context, uid, targetUID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).
		Where("uid = ? AND target_uid = ?", uid, targetUID).
		Delete(&entity.DbFollow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetFollow loads a follow edge. A miss yields (nil, nil).
func (r *GormRepository) GetFollow(ctx context.Context, uid, targetUID uint) (*entity.DbFollow, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var follow entity.DbFollow
	if err := r.db.WithContext(ctx).
		Where("uid = ? AND target_uid = ?", uid, targetUID).
		First(&follow).Error; err != nil {
		return nil, absent(err)
	}
	return &follow, nil
}

// ListFollowers returns the edges pointing at uid.
func (r *GormRepository) ListFollowers(ctx context.Context, uid uint) ([]entity.DbFollow, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var follows []entity.DbFollow
	if err := r.db.WithContext(ctx).Where("target_uid = ?", uid).Order("id DESC").Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}

// ListFollowing returns the edges originating from uid.
func (r *GormRepository) ListFollowing(ctx context.Context, uid uint) ([]entity.DbFollow, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var follows []entity.DbFollow
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).Order("id DESC").Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}
