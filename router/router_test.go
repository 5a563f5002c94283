// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/word-sprint/auth"
	"github.com/danielhkuo/word-sprint/bot"
	"github.com/danielhkuo/word-sprint/cliparse"
	"github.com/danielhkuo/word-sprint/db"
	"github.com/danielhkuo/word-sprint/handlers"
	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/sprint"
	"github.com/danielhkuo/word-sprint/store"
	"github.com/danielhkuo/word-sprint/testutil"
)

type testEnv struct {
	mux *http.ServeMux
	out *testutil.FakeReplier
	svc *sprint.Service
}

func newTestRouter(t *testing.T, cfg cliparse.Config) *testEnv {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	svc := sprint.NewService(
		store.New(conn, db.SQLite),
		testutil.NewStubValidator(nil),
		auth.NewAdminList(cfg.AdminIDs),
		time.UTC,
	)
	out := &testutil.FakeReplier{}
	testutil.CreateTestSprint(t, conn, "animals", models.StatusActive)

	return &testEnv{
		mux: NewRouter(svc, bot.NewDispatcher(svc), out, cfg),
		out: out,
		svc: svc,
	}
}

func webhookConfig() cliparse.Config {
	cfg := testutil.GetTestConfig()
	cfg.WebhookURL = "https://bot.example.com/webhook"
	return cfg
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestRouter(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	env.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	env := newTestRouter(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	env.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "word-sprint bot"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	env := newTestRouter(t, webhookConfig())

	// 400, 401, 404 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"POST", "/webhook"},
		{"GET", "/sprints"},
		{"OPTIONS", "/sprints"},
		{"GET", "/sprints/1"},
		{"OPTIONS", "/sprints/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			env.mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestWebhookOnlyInWebhookMode(t *testing.T) {
	env := newTestRouter(t, testutil.GetTestConfig())

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{"update_id":1}`))
	req.Header.Set(handlers.SecretHeader, testutil.GetTestConfig().WebhookSecret)
	w := httptest.NewRecorder()

	env.mux.ServeHTTP(w, req)

	// only GET / matches the path while long polling
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 without a webhook URL, got %d", w.Code)
	}
}

func TestWebhookRoute(t *testing.T) {
	cfg := webhookConfig()
	env := newTestRouter(t, cfg)

	body := `{"update_id":1,"message":{"message_id":1,"date":1710408600,` +
		`"from":{"id":42,"is_bot":false,"first_name":"Ann"},` +
		`"chat":{"id":42,"type":"private"},"text":"/whoami"}}`

	t.Run("bad secret", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
		req.Header.Set(handlers.SecretHeader, "nope")
		w := httptest.NewRecorder()
		env.mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("good secret", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
		req.Header.Set(handlers.SecretHeader, cfg.WebhookSecret)
		w := httptest.NewRecorder()
		env.mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if w.Header().Get("X-Request-ID") == "" {
			t.Error("Expected request id header from logging middleware")
		}
		if reply := env.out.Last(42).Text; !strings.Contains(reply, "42") {
			t.Errorf("Expected whoami reply with the sender id, got %q", reply)
		}
	})
}

func TestPathParameterExtraction(t *testing.T) {
	env := newTestRouter(t, testutil.GetTestConfig())

	sprints, err := env.svc.ListActiveSprints(t.Context())
	if err != nil || len(sprints) != 1 {
		t.Fatalf("Expected one seeded sprint, got %v (%v)", sprints, err)
	}
	id := strconv.FormatInt(sprints[0].ID, 10)

	req := httptest.NewRequest("GET", "/sprints/"+id, nil)
	w := httptest.NewRecorder()

	env.mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header on sprint endpoints")
	}

	var resp models.SprintDetailResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Sprint.Theme != "animals" {
		t.Errorf("Expected theme 'animals', got %q", resp.Sprint.Theme)
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	env := newTestRouter(t, webhookConfig())

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"GET to webhook", "GET", "/webhook", http.StatusOK}, // falls through to GET /
		{"DELETE a sprint", "DELETE", "/sprints/1", http.StatusMethodNotAllowed},
		{"POST a sprint", "POST", "/sprints", http.StatusMethodNotAllowed},
		{"preflight", "OPTIONS", "/sprints", http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			env.mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}
