package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Anonymous is the user name given to requests when API key auth is disabled.
const Anonymous = "anonymous"

func New(apiKeyToUserName map[string]string, next http.Handler) *Auth {
	return &Auth{
		Next:             next,
		APIKeyToUserName: apiKeyToUserName,
	}
}

type Auth struct {
	Next             http.Handler
	APIKeyToUserName map[string]string
}

// LoadFromFile reads a JSON object that maps API keys to user names.
func LoadFromFile(name string) (apiKeyToUserName map[string]string, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m := make(map[string]string)
	if err = json.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("auth: failed to decode %s: %w", name, err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("auth: no API keys found in %s", name)
	}
	return m, nil
}

type userContextKey int

const userKey userContextKey = 0

func GetUser(r *http.Request) (user string, ok bool) {
	user, ok = r.Context().Value(userKey).(string)
	return
}

// GetUserOrAnonymous returns the authenticated user, or Anonymous.
func GetUserOrAnonymous(r *http.Request) string {
	if user, ok := GetUser(r); ok {
		return user
	}
	return Anonymous
}

func (a *Auth) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Browsers don't send credentials with CORS preflight requests.
	if r.Method == http.MethodOptions {
		a.Next.ServeHTTP(w, r)
		return
	}
	user, ok := a.APIKeyToUserName[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		return
	}
	r = r.WithContext(context.WithValue(r.Context(), userKey, user))
	a.Next.ServeHTTP(w, r)
}
