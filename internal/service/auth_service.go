package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"penlog/internal/auth"
	"penlog/internal/entity"
	"penlog/internal/model"

	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`(?i)^[0-9a-zA-Z]([-_.]?[0-9a-zA-Z])*@[0-9a-zA-Z]([-_.]?[0-9a-zA-Z])*\.[a-zA-Z]{2,3}$`)

const passwordSymbols = "$@!%*#?&"

// AuthService owns signup, login, password change, mail confirmation, and
// SNS join. It is the only layer that touches password material.
type AuthService struct {
	repo   model.Repository
	hasher *auth.Hasher
}

// NewAuthService creates the auth service.
func NewAuthService(repo model.Repository, hasher *auth.Hasher) *AuthService {
	return &AuthService{repo: repo, hasher: hasher}
}

// validPassword enforces the complexity policy: at least 8 characters,
// drawn from letters, digits, and the fixed symbol set, with at least one
// of each class present.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, ch := range pw {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
			hasLetter = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, ch):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

// CreateUser registers a new account and returns the persisted record with
// its pending confirmation token.
func (s *AuthService) CreateUser(ctx context.Context, req entity.JoinRequest) (*entity.DbUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	nick := strings.TrimSpace(req.UserNick)

	if email == "" || nick == "" {
		return nil, fmt.Errorf("%w: email and nickname are required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: malformed email", ErrValidation)
	}
	if req.UserPw != req.UserPwRe {
		return nil, fmt.Errorf("%w: passwords are not matched", ErrValidation)
	}
	if !validPassword(req.UserPw) {
		return nil, fmt.Errorf("%w: check password rule", ErrValidation)
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, email)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(req.UserPw, salt)
	if err != nil {
		return nil, err
	}
	token := auth.DeriveConfirmToken(hash)

	user := &entity.DbUser{
		Email:           email,
		Password:        hash,
		Salt:            salt,
		Token:           &token,
		ScreenID:        auth.DeriveScreenID(email),
		Nickname:        nick,
		DisplayLanguage: req.UserLang,
		IsConfirmed:     false,
		SnsType:         entity.SnsTypeNormal,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// Two signups can race past the existence check; the unique email
		// index is the arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, email)
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password and returns the full record.
// Minting the session token is the caller's job.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, email)
	}

	ok, err := s.hasher.Verify(user.Password, user.Salt, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if user.DeactivatedAt != nil {
		return nil, ErrAccountDeactivated
	}
	return user, nil
}

// ChangePassword rehashes with a fresh salt and persists the pair. Session
// tokens issued earlier stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, email, newPassword string) error {
	if !validPassword(newPassword) {
		return fmt.Errorf("%w: check password rule", ErrValidation)
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, email)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword, salt)
	if err != nil {
		return err
	}

	return s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{
		Password: &hash,
		Salt:     &salt,
		TokenSet: true,
	})
}

// ConfirmUser completes the mail challenge for the exact (email, token)
// pair. A replay after a successful confirmation reports AlreadyConfirmed
// rather than a bare not-found.
func (s *AuthService) ConfirmUser(ctx context.Context, email, token string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: email and token are required", ErrValidation)
	}

	user, err := s.repo.GetUserByEmailAndToken(ctx, email, token)
	if err != nil {
		return err
	}
	if user == nil {
		byEmail, err := s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		if byEmail != nil && byEmail.IsConfirmed && byEmail.Token == nil {
			return ErrAlreadyConfirmed
		}
		return fmt.Errorf("%w: no account matches email and token", ErrAccountNotFound)
	}
	if user.IsConfirmed {
		return ErrAlreadyConfirmed
	}

	confirmed := true
	return s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{
		IsConfirmed: &confirmed,
		TokenSet:    true,
	})
}

// IssuePasswordResetToken stores a fresh random token on the account and
// returns it for the reset mail.
func (s *AuthService) IssuePasswordResetToken(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("%w: %s", ErrAccountNotFound, email)
	}

	token, err := auth.NewResetToken()
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Token: &token}); err != nil {
		return "", err
	}
	return token, nil
}

// CreateSnsUser registers an account for a provider-verified identity. The
// password and salt are synthesized from the email only to keep the record
// shape uniform; the account is confirmed immediately.
func (s *AuthService) CreateSnsUser(ctx context.Context, data entity.SnsJoinData) (*entity.DbUser, error) {
	if strings.TrimSpace(data.UID) == "" ||
		strings.TrimSpace(data.Email) == "" ||
		strings.TrimSpace(data.Name) == "" ||
		strings.TrimSpace(data.SnsType) == "" {
		return nil, fmt.Errorf("%w: uid, email, name, and snsType are required", ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(data.Email))
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(email, salt)
	if err != nil {
		return nil, err
	}

	user := &entity.DbUser{
		Email:           email,
		Password:        hash,
		Salt:            salt,
		ScreenID:        auth.DeriveScreenID(email),
		Nickname:        strings.TrimSpace(data.Name),
		ProfileImage:    data.ProfileImage,
		DisplayLanguage: data.DisplayLanguage,
		IsConfirmed:     true,
		SnsID:           data.UID,
		SnsType:         data.SnsType,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, email)
		}
		return nil, err
	}
	return user, nil
}

// FindByID is a pass-through lookup.
func (s *AuthService) FindByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	return s.repo.GetUserByID(ctx, id)
}

// FindByEmail is a pass-through lookup.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

// FindBySnsID is a pass-through lookup.
func (s *AuthService) FindBySnsID(ctx context.Context, snsID, snsType string) (*entity.DbUser, error) {
	return s.repo.GetUserBySnsID(ctx, snsID, snsType)
}

// FindAll lists accounts with pagination.
func (s *AuthService) FindAll(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error) {
	return s.repo.ListUsers(ctx, params)
}

// UpdateUser applies a partial account update.
func (s *AuthService) UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) (*entity.DbUser, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: user id required", ErrValidation)
	}
	if updates.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	existing, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: id %d", ErrAccountNotFound, id)
	}

	if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repo.GetUserByID(ctx, id)
}

// DeleteUser removes an account permanently.
func (s *AuthService) DeleteUser(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: id %d", ErrAccountNotFound, id)
	}
	return nil
}
