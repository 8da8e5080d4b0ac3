package api

import (
	"testing"

	"penlog/internal/entity"
)

func TestSnsJoinData(t *testing.T) {
	tests := []struct {
		name     string
		req      entity.SnsLoginRequest
		wantOK   bool
		wantUID  string
		wantType string
	}{
		{
			name: "google",
			req: entity.SnsLoginRequest{
				SnsType: entity.SnsTypeGoogle,
				SnsData: entity.SnsData{
					Google: &entity.GoogleProfile{
						GoogleID: "g-123",
						Email:    "user@example.com",
						Name:     "tester",
						ImageURL: "https://cdn.example.com/p.png",
					},
				},
				UserLang: entity.LangEnglish,
			},
			wantOK:   true,
			wantUID:  "g-123",
			wantType: entity.SnsTypeGoogle,
		},
		{
			name: "facebook",
			req: entity.SnsLoginRequest{
				SnsType: entity.SnsTypeFacebook,
				SnsData: entity.SnsData{
					Facebook: &entity.FacebookProfile{
						ID:    "fb-456",
						Email: "user@example.com",
						Name:  "tester",
					},
				},
			},
			wantOK:   true,
			wantUID:  "fb-456",
			wantType: entity.SnsTypeFacebook,
		},
		{
			name: "google type without google payload",
			req: entity.SnsLoginRequest{
				SnsType: entity.SnsTypeGoogle,
				SnsData: entity.SnsData{
					Facebook: &entity.FacebookProfile{ID: "fb-456"},
				},
			},
			wantOK: false,
		},
		{
			name:   "unknown provider",
			req:    entity.SnsLoginRequest{SnsType: "twitter"},
			wantOK: false,
		},
		{
			name:   "empty payload",
			req:    entity.SnsLoginRequest{SnsType: entity.SnsTypeFacebook},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			join, ok := snsJoinData(&tt.req)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !tt.wantOK {
				return
			}
			if join.UID != tt.wantUID {
				t.Errorf("expected uid %q, got %q", tt.wantUID, join.UID)
			}
			if join.SnsType != tt.wantType {
				t.Errorf("expected sns type %q, got %q", tt.wantType, join.SnsType)
			}
			if join.DisplayLanguage != tt.req.UserLang {
				t.Errorf("expected display language %d, got %d", tt.req.UserLang, join.DisplayLanguage)
			}
		})
	}
}

func TestNormalisePublicBase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty defaults", input: "", expected: "/files"},
		{name: "missing slash", input: "files", expected: "/files"},
		{name: "trailing slash trimmed", input: "/files/", expected: "/files"},
		{name: "absolute url", input: "https://cdn.example.com/", expected: "https://cdn.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalisePublicBase(tt.input); got != tt.expected {
				t.Errorf("normalisePublicBase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	h := &HTTPHandler{storagePublicBase: "/files"}

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "empty", path: "", expected: ""},
		{name: "relative path", path: "avatar/2026/09/01/1.png", expected: "/files/avatar/2026/09/01/1.png"},
		{name: "leading slash", path: "/avatar/1.png", expected: "/files/avatar/1.png"},
		{name: "absolute url passthrough", path: "https://cdn.example.com/a.png", expected: "https://cdn.example.com/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.publicURL(tt.path); got != tt.expected {
				t.Errorf("publicURL(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
