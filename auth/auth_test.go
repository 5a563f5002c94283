// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"regexp"
	"testing"
)

func TestAdminList(t *testing.T) {
	admins := NewAdminList([]int64{300, 100, 200, 100})

	tests := []struct {
		name string
		id   int64
		want bool
	}{
		{"first admin", 100, true},
		{"last admin", 300, true},
		{"regular user", 42, false},
		{"zero id", 0, false},
		{"negative id", -100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := admins.IsAdmin(tt.id); got != tt.want {
				t.Errorf("IsAdmin(%d) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}

	if admins.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (duplicates collapsed)", admins.Len())
	}

	ids := admins.IDs()
	want := []int64{100, 200, 300}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestEmptyAdminList(t *testing.T) {
	var admins AdminList
	if admins.IsAdmin(1) {
		t.Error("zero AdminList should not grant access")
	}
	if len(admins.IDs()) != 0 {
		t.Error("zero AdminList should have no ids")
	}
}

func TestDeriveWebhookSecret(t *testing.T) {
	allowed := regexp.MustCompile(`^[A-Za-z0-9_-]{1,256}$`)

	tests := []struct {
		name  string
		token string
		salt  string
	}{
		{"standard", "123456:ABC-DEF", "salt"},
		{"empty token", "", "salt"},
		{"empty salt", "123456:ABC-DEF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := DeriveWebhookSecret(tt.token, tt.salt)

			if !allowed.MatchString(secret) {
				t.Errorf("DeriveWebhookSecret() = %q, contains characters Telegram rejects", secret)
			}

			// Should be deterministic
			if secret != DeriveWebhookSecret(tt.token, tt.salt) {
				t.Error("DeriveWebhookSecret() is not deterministic")
			}

			// Different tokens should produce different secrets
			if secret == DeriveWebhookSecret(tt.token+"x", tt.salt) {
				t.Error("DeriveWebhookSecret() produced same secret for different tokens")
			}
		})
	}
}

func TestValidateSecret(t *testing.T) {
	expected := DeriveWebhookSecret("123456:ABC", "salt")

	tests := []struct {
		name     string
		provided string
		expected string
		wantErr  bool
	}{
		{"valid", expected, expected, false},
		{"wrong secret", "nope", expected, true},
		{"empty provided", "", expected, true},
		{"nothing configured", "", "", true},
		{"prefix only", expected[:5], expected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSecret(tt.provided, tt.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSecret() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != ErrInvalidSecret {
				t.Errorf("ValidateSecret() error = %v, want ErrInvalidSecret", err)
			}
		})
	}
}
