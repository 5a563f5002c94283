// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"slices"
	"strings"
)

var (
	ErrInvalidSecret = errors.New("invalid webhook secret")
)

// AdminList is the fixed set of privileged sender ids.
type AdminList struct {
	ids map[int64]struct{}
}

func NewAdminList(ids []int64) AdminList {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return AdminList{ids: set}
}

// IsAdmin reports whether id may run lifecycle, export and broadcast commands.
func (a AdminList) IsAdmin(id int64) bool {
	_, ok := a.ids[id]
	return ok
}

// IDs returns the admin ids in ascending order.
func (a AdminList) IDs() []int64 {
	out := make([]int64, 0, len(a.ids))
	for id := range a.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (a AdminList) Len() int {
	return len(a.ids)
}

// DeriveWebhookSecret creates an HMAC-based secret for webhook delivery.
// This is deterministic, so restarts keep accepting the secret registered
// with Telegram. The output only uses [A-Za-z0-9_-] as Telegram requires.
func DeriveWebhookSecret(botToken, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(botToken))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateSecret compares the secret sent with a webhook call against the
// expected one in constant time.
func ValidateSecret(provided, expected string) error {
	if expected == "" || !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidSecret
	}
	return nil
}
