package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue("user-1", "aisha")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Verify() subject = %q, want %q", claims.Subject, "user-1")
	}
	if claims.Username != "aisha" {
		t.Errorf("Verify() username = %q, want %q", claims.Username, "aisha")
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "garbage",
			token: func() string { return "not.a.token" },
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewManager("other-secret", time.Hour)
				tok, _ := other.Issue("user-1", "aisha")
				return tok
			},
		},
		{
			name: "expired",
			token: func() string {
				expired := NewManager("test-secret", -time.Minute)
				tok, _ := expired.Issue("user-1", "aisha")
				return tok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(tt.token()); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
