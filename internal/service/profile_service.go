package service

import (
	"context"
	"fmt"

	"penlog/internal/entity"
	"penlog/internal/model"
)

// ProfileService reads and updates the public profile fields of an
// account. Credential and state fields never pass through this layer.
type ProfileService struct {
	repo model.Repository
}

// NewProfileService creates the profile service.
func NewProfileService(repo model.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetUserProfile returns the redacted view of an account.
func (s *ProfileService) GetUserProfile(ctx context.Context, userID uint) (*entity.UserProfile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: id %d", ErrAccountNotFound, userID)
	}
	return redactProfile(user), nil
}

// PostUserProfile applies a partial update restricted to profile-only
// fields and returns the refreshed view.
func (s *ProfileService) PostUserProfile(ctx context.Context, userID uint, req entity.ProfileUpdateRequest) (*entity.UserProfile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: id %d", ErrAccountNotFound, userID)
	}

	updates := entity.UserUpdates{
		ScreenID:        req.ScreenID,
		Intro:           req.Intro,
		Nickname:        req.Nickname,
		BannerImage:     req.BannerImage,
		ProfileImage:    req.ProfileImage,
		DisplayLanguage: req.DisplayLanguage,
	}
	if updates.IsEmpty() {
		return redactProfile(user), nil
	}

	if err := s.repo.UpdateUser(ctx, userID, updates); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: id %d", ErrAccountNotFound, userID)
	}
	return redactProfile(updated), nil
}

func redactProfile(user *entity.DbUser) *entity.UserProfile {
	return &entity.UserProfile{
		ID:              user.ID,
		Email:           user.Email,
		ScreenID:        user.ScreenID,
		Nickname:        user.Nickname,
		Intro:           user.Intro,
		ProfileImage:    user.ProfileImage,
		BannerImage:     user.BannerImage,
		DisplayLanguage: user.DisplayLanguage,
		Country:         user.Country,
		IsConfirmed:     user.IsConfirmed,
		FollowerCount:   user.FollowerCount,
		FollowingCount:  user.FollowingCount,
		JoinDate:        user.CreatedAt,
	}
}
