package sql

import (
	"context"
	"fmt"
	"strings"

	"penlog/internal/entity"

	"gorm.io/gorm"
)

// CreateUser persists a new account record.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateUser applies a partial update to an existing account.
func (r *GormRepository) UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user id")
	}
	m := updates.ToMap()
	if len(m) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).Updates(m).Error
}

// GetUserByID loads an account by ID. A miss yields (nil, nil).
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, absent(err)
	}
	return &user, nil
}

// GetUserByEmail loads an account by email, case-insensitively.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(trimmed)).First(&user).Error; err != nil {
		return nil, absent(err)
	}
	return &user, nil
}

// GetUserBySnsID loads an account by provider identity.
func (r *GormRepository) GetUserBySnsID(ctx context.Context, snsID, snsType string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(snsID) == "" || strings.TrimSpace(snsType) == "" {
		return nil, fmt.Errorf("sns id and type are required")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("sns_id = ? AND sns_type = ?", snsID, snsType).First(&user).Error; err != nil {
		return nil, absent(err)
	}
	return &user, nil
}

// GetUserByEmailAndToken loads the account matching the exact pair used by
// mail confirmation.
func (r *GormRepository) GetUserByEmailAndToken(ctx context.Context, email, token string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("email and token are required")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ? AND token = ?", strings.ToLower(strings.TrimSpace(email)), token).First(&user).Error; err != nil {
		return nil, absent(err)
	}
	return &user, nil
}

// ListUsers returns paginated accounts.
func (r *GormRepository) ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{})
	if params != nil {
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where("LOWER(email) LIKE ? OR LOWER(nickname) LIKE ? OR LOWER(screen_id) LIKE ?", kw, kw, kw)
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

	var users []entity.DbUser
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return users, meta, nil
}

// DeleteUser removes an account. The bool reports whether a row was
// actually deleted.
func (r *GormRepository) DeleteUser(ctx context.Context, id uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return false, fmt.Errorf("invalid user id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbUser{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountUsers returns the total account count.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AdjustFollowCounts moves the follower/following counters on both sides of
// a follow edge by delta.
func (r *GormRepository) AdjustFollowCounts(ctx context.Context, followerID, followedID uint, delta int) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", followerID).
		Update("following_count", gorm.Expr("following_count + ?", delta)).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", followedID).
		Update("follower_count", gorm.Expr("follower_count + ?", delta)).Error
}
