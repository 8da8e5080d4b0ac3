package mail

import (
	"strings"
	"testing"

	"penlog/internal/config"
)

func TestAuthLink(t *testing.T) {
	m := NewMailer(config.Config{PublicBaseURL: "https://penlog.example.com/"})

	link := m.authLink("/auth/mailAuth", "user+tag@example.com", "abc123")
	if !strings.HasPrefix(link, "https://penlog.example.com/auth/mailAuth?") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	if !strings.Contains(link, "email=user%2Btag%40example.com") {
		t.Fatalf("expected url-encoded email, got %q", link)
	}
	if !strings.Contains(link, "token=abc123") {
		t.Fatalf("expected token parameter, got %q", link)
	}
}

func TestSendSkipsWithoutConfig(t *testing.T) {
	m := NewMailer(config.Config{})
	if err := m.SendConfirmation("user@example.com", "token"); err != nil {
		t.Fatalf("expected unconfigured mailer to be a no-op, got %v", err)
	}
	if err := m.SendPasswordReset("user@example.com", "token"); err != nil {
		t.Fatalf("expected unconfigured mailer to be a no-op, got %v", err)
	}
}
