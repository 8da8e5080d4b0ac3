package service

import (
	"context"
	"errors"
	"testing"

	"penlog/internal/auth"
	"penlog/internal/entity"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeRepo) {
	t.Helper()
	hasher, err := auth.NewHasher(1000, 64)
	if err != nil {
		t.Fatalf("unexpected error creating hasher: %v", err)
	}
	repo := newFakeRepo()
	return NewAuthService(repo, hasher), repo
}

func joinRequest() entity.JoinRequest {
	return entity.JoinRequest{
		Email:    "user@example.com",
		UserPw:   "passw0rd!",
		UserPwRe: "passw0rd!",
		UserNick: "tester",
		UserLang: entity.LangEnglish,
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "valid", password: "passw0rd!", want: true},
		{name: "too short", password: "pw1!", want: false},
		{name: "no digit", password: "password!", want: false},
		{name: "no letter", password: "12345678!", want: false},
		{name: "no symbol", password: "passw0rd1", want: false},
		{name: "disallowed character", password: "passw0rd^", want: false},
		{name: "all allowed symbols", password: "a1$@!%*#?&", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validPassword(tt.password); got != tt.want {
				t.Errorf("validPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, joinRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected persisted user to have an id")
	}
	if user.IsConfirmed {
		t.Fatal("expected new account to be unconfirmed")
	}
	if user.Token == nil || *user.Token == "" {
		t.Fatal("expected a pending confirmation token")
	}
	if len(user.ScreenID) != 14 {
		t.Fatalf("expected 14-char screen id, got %q", user.ScreenID)
	}
	if user.Password == "passw0rd!" {
		t.Fatal("expected stored password to be a digest")
	}
	if user.Salt == "" {
		t.Fatal("expected a stored salt")
	}
	if user.SnsType != entity.SnsTypeNormal {
		t.Fatalf("expected sns type %q, got %q", entity.SnsTypeNormal, user.SnsType)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*entity.JoinRequest)
	}{
		{name: "empty nickname", mutate: func(r *entity.JoinRequest) { r.UserNick = " " }},
		{name: "malformed email", mutate: func(r *entity.JoinRequest) { r.Email = "not-an-email" }},
		{name: "password mismatch", mutate: func(r *entity.JoinRequest) { r.UserPwRe = "different0!" }},
		{name: "weak password", mutate: func(r *entity.JoinRequest) { r.UserPw = "short"; r.UserPwRe = "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := joinRequest()
			tt.mutate(&req)
			if _, err := svc.CreateUser(ctx, req); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, joinRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := joinRequest()
	req.Email = "USER@example.com"
	if _, err := svc.CreateUser(ctx, req); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, joinRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := svc.Login(ctx, "user@example.com", "passw0rd!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, user.ID)
	}

	if _, err := svc.Login(ctx, "missing@example.com", "passw0rd!"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.Login(ctx, "user@example.com", "wrongpw1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	now := repo.users[created.ID].CreatedAt
	repo.users[created.ID].DeactivatedAt = &now
	if _, err := svc.Login(ctx, "user@example.com", "passw0rd!"); !errors.Is(err, ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestConfirmUser(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, joinRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token := *created.Token

	if err := svc.ConfirmUser(ctx, created.Email, token); err != nil {
		t.Fatalf("unexpected error confirming: %v", err)
	}

	stored := repo.users[created.ID]
	if !stored.IsConfirmed {
		t.Fatal("expected account to be confirmed")
	}
	if stored.Token != nil {
		t.Fatal("expected confirmation token to be cleared")
	}

	// Replaying the link must report the confirmed state, not a miss.
	if err := svc.ConfirmUser(ctx, created.Email, token); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}
}

func TestConfirmUserWrongToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, joinRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ConfirmUser(ctx, created.Email, "ffffffffffffffffffffffff"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if err := svc.ConfirmUser(ctx, "missing@example.com", "token"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if err := svc.ConfirmUser(ctx, "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, joinRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oldHash := created.Password
	oldSalt := created.Salt

	if err := svc.ChangePassword(ctx, created.Email, "newpassw0rd!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.users[created.ID]
	if stored.Password == oldHash {
		t.Fatal("expected the digest to change")
	}
	if stored.Salt == oldSalt {
		t.Fatal("expected a fresh salt")
	}
	if stored.Token != nil {
		t.Fatal("expected any pending token to be cleared")
	}

	if _, err := svc.Login(ctx, created.Email, "newpassw0rd!"); err != nil {
		t.Fatalf("expected login with the new password, got %v", err)
	}
	if _, err := svc.Login(ctx, created.Email, "passw0rd!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
}

func TestChangePasswordValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, "user@example.com", "weak"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := svc.ChangePassword(ctx, "missing@example.com", "newpassw0rd!"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestIssuePasswordResetToken(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, joinRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := svc.IssuePasswordResetToken(ctx, created.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a reset token")
	}
	stored := repo.users[created.ID]
	if stored.Token == nil || *stored.Token != token {
		t.Fatal("expected the token to be persisted on the account")
	}

	if _, err := svc.IssuePasswordResetToken(ctx, "missing@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestCreateSnsUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.CreateSnsUser(ctx, entity.SnsJoinData{
		UID:             "google-uid-1",
		Email:           "SNS@example.com",
		Name:            "sns tester",
		ProfileImage:    "https://cdn.example.com/p.png",
		SnsType:         entity.SnsTypeGoogle,
		DisplayLanguage: entity.LangJapanese,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsConfirmed {
		t.Fatal("expected sns account to be confirmed immediately")
	}
	if user.Email != "sns@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.SnsID != "google-uid-1" || user.SnsType != entity.SnsTypeGoogle {
		t.Fatalf("unexpected sns identity: %q/%q", user.SnsID, user.SnsType)
	}

	found, err := svc.FindBySnsID(ctx, "google-uid-1", entity.SnsTypeGoogle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Fatal("expected to find the sns account by provider id")
	}
}

func TestCreateSnsUserValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.CreateSnsUser(ctx, entity.SnsJoinData{Email: "a@example.com"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
