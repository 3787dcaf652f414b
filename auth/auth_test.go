package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAuth(t *testing.T) {
	apiKeyToUserName := map[string]string{
		"test-api-key-1": "user-1",
		"test-api-key-2": "user-2",
	}
	tests := []struct {
		name           string
		req            func() *http.Request
		expectedStatus int
		expectedUser   string
	}{
		{
			name:           "no auth header returns 401",
			req:            func() *http.Request { return httptest.NewRequest("POST", "/api/search", nil) },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "auth header not in map returns 401",
			req: func() *http.Request {
				req := httptest.NewRequest("POST", "/api/search", nil)
				req.Header.Set("Authorization", "Bearer not-in-map")
				return req
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "auth header in map returns 200",
			req: func() *http.Request {
				req := httptest.NewRequest("POST", "/api/search", nil)
				req.Header.Set("Authorization", "Bearer test-api-key-1")
				return req
			},
			expectedStatus: http.StatusOK,
			expectedUser:   "user-1",
		},
		{
			name: "auth header doesn't need Bearer prefix",
			req: func() *http.Request {
				req := httptest.NewRequest("POST", "/api/search", nil)
				req.Header.Set("Authorization", "test-api-key-2")
				return req
			},
			expectedStatus: http.StatusOK,
			expectedUser:   "user-2",
		},
		{
			name:           "preflight requests are passed through without a user",
			req:            func() *http.Request { return httptest.NewRequest("OPTIONS", "/api/search", nil) },
			expectedStatus: http.StatusOK,
			expectedUser:   Anonymous,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user string
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user = GetUserOrAnonymous(r)
				w.WriteHeader(http.StatusOK)
			})

			auth := New(apiKeyToUserName, h)
			w := httptest.NewRecorder()
			auth.ServeHTTP(w, tt.req())
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if user != tt.expectedUser {
				t.Errorf("expected user to be %s, got %s", tt.expectedUser, user)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, contents string) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(contents), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		return p
	}

	t.Run("keys are loaded", func(t *testing.T) {
		m, err := LoadFromFile(write("keys.json", `{"key-1": "user-1"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(map[string]string{"key-1": "user-1"}, m); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("an empty file is an error", func(t *testing.T) {
		if _, err := LoadFromFile(write("empty.json", `{}`)); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("invalid JSON is an error", func(t *testing.T) {
		if _, err := LoadFromFile(write("invalid.json", `[`)); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("a missing file is an error", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(dir, "missing.json")); err == nil {
			t.Error("expected error")
		}
	})
}
