package service

import (
	"context"
	"errors"
	"testing"

	"penlog/internal/entity"
)

func seedProfileUser(t *testing.T, repo *fakeRepo) *entity.DbUser {
	t.Helper()
	token := "pending-token"
	user := &entity.DbUser{
		Email:       "user@example.com",
		Password:    "digest",
		Salt:        "salt",
		Token:       &token,
		ScreenID:    "c1b39bca95e38c",
		Nickname:    "tester",
		Intro:       "hello",
		IsConfirmed: false,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("unexpected error seeding user: %v", err)
	}
	return user
}

func TestGetUserProfileRedaction(t *testing.T) {
	repo := newFakeRepo()
	svc := NewProfileService(repo)
	user := seedProfileUser(t, repo)

	profile, err := svc.GetUserProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Email != user.Email {
		t.Fatalf("expected email %q, got %q", user.Email, profile.Email)
	}
	if profile.Nickname != user.Nickname {
		t.Fatalf("expected nickname %q, got %q", user.Nickname, profile.Nickname)
	}
	if profile.ScreenID != user.ScreenID {
		t.Fatalf("expected screen id %q, got %q", user.ScreenID, profile.ScreenID)
	}

	if _, err := svc.GetUserProfile(context.Background(), 999); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestPostUserProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewProfileService(repo)
	user := seedProfileUser(t, repo)

	nickname := "renamed"
	intro := "new intro"
	lang := entity.LangChineseSimplified
	profile, err := svc.PostUserProfile(context.Background(), user.ID, entity.ProfileUpdateRequest{
		Nickname:        &nickname,
		Intro:           &intro,
		DisplayLanguage: &lang,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Nickname != nickname {
		t.Fatalf("expected nickname %q, got %q", nickname, profile.Nickname)
	}
	if profile.Intro != intro {
		t.Fatalf("expected intro %q, got %q", intro, profile.Intro)
	}
	if profile.DisplayLanguage != lang {
		t.Fatalf("expected display language %d, got %d", lang, profile.DisplayLanguage)
	}

	// A profile update must not touch credentials or confirmation state.
	stored := repo.users[user.ID]
	if stored.Password != "digest" || stored.Salt != "salt" {
		t.Fatal("expected credentials to be untouched")
	}
	if stored.Token == nil || *stored.Token != "pending-token" {
		t.Fatal("expected pending token to be untouched")
	}
	if stored.IsConfirmed {
		t.Fatal("expected confirmation state to be untouched")
	}
}

func TestPostUserProfileUnknownAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewProfileService(repo)

	nickname := "ghost"
	if _, err := svc.PostUserProfile(context.Background(), 999, entity.ProfileUpdateRequest{Nickname: &nickname}); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
