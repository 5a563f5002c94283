// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/word-sprint/cliparse"
	"github.com/danielhkuo/word-sprint/db"
	"github.com/danielhkuo/word-sprint/filter"
	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/notify"
)

// Test user ids
const (
	AdminID  int64 = 1000
	PlayerID int64 = 2000
)

// BaseTime is a fixed clock for tests that need deterministic timestamps.
var BaseTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// SetupTestDB opens a fresh file-backed SQLite database with the full schema.
// The file lives in t.TempDir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.SQLite, "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file:test.db",
		DatabaseType:   string(db.SQLite),
		BotToken:       "123456:test-token",
		AdminIDs:       []int64{AdminID},
		WebhookSecret:  "test-webhook-secret",
		Timezone:       "UTC",
		Location:       time.UTC,
		DigestSchedule: "0 0 * * *",
	}
}

// CreateTestUser inserts a user row directly.
func CreateTestUser(t *testing.T, conn *sql.DB, id int64, username string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO users (id, username, joined_at)
		VALUES ($1, $2, $3)
	`, id, username, BaseTime)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestSprint inserts a sprint directly and returns its id.
// status should be "active" or "completed"
func CreateTestSprint(t *testing.T, conn *sql.DB, theme, status string) int64 {
	t.Helper()

	var completedAt *time.Time
	if status == models.StatusCompleted {
		c := BaseTime.Add(time.Hour)
		completedAt = &c
	}

	var id int64
	err := conn.QueryRow(`
		INSERT INTO sprints (theme, duration_days, status, started_at, ends_at, completed_at)
		VALUES ($1, 1, $2, $3, $4, $5)
		RETURNING id
	`, theme, status, BaseTime, BaseTime.Add(24*time.Hour), completedAt).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test sprint: %v", err)
	}

	return id
}

// StubDetector maps whole texts to language codes. Unknown texts detect as
// English. Tests of the real detector live in the filter package.
type StubDetector map[string]string

func (d StubDetector) Detect(text string) string {
	if lang, ok := d[text]; ok {
		return lang
	}
	return "en"
}

// StubProfanity flags texts containing any of its words.
type StubProfanity []string

func (p StubProfanity) IsProfane(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range p {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// NewStubValidator returns a validator with deterministic language detection.
func NewStubValidator(langs StubDetector, bad ...string) *filter.Validator {
	return filter.NewValidator(langs, StubProfanity(bad))
}

// SentMessage is one message captured by FakeReplier.
type SentMessage struct {
	ChatID   int64
	Text     string
	Filename string
	Data     []byte
}

// FakeReplier records outgoing messages and fails for chats listed in FailFor.
type FakeReplier struct {
	mu      sync.Mutex
	Sent    []SentMessage
	FailFor map[int64]bool
}

func (f *FakeReplier) Notify(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailFor[chatID] {
		return errFakeTransport
	}
	f.Sent = append(f.Sent, SentMessage{ChatID: chatID, Text: text})
	return nil
}

func (f *FakeReplier) SendFile(_ context.Context, chatID int64, filename string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailFor[chatID] {
		return errFakeTransport
	}
	f.Sent = append(f.Sent, SentMessage{ChatID: chatID, Filename: filename, Data: data})
	return nil
}

// To returns the messages sent to chatID in order.
func (f *FakeReplier) To(chatID int64) []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []SentMessage
	for _, m := range f.Sent {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

// Last returns the most recent message to chatID, or an empty one.
func (f *FakeReplier) Last(chatID int64) SentMessage {
	msgs := f.To(chatID)
	if len(msgs) == 0 {
		return SentMessage{}
	}
	return msgs[len(msgs)-1]
}

func (f *FakeReplier) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = nil
}

var errFakeTransport = fmt.Errorf("%w: fake chat unreachable", notify.ErrTransport)

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
