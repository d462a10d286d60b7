package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plantnet/internal/dto/request"
	"plantnet/internal/usecase"
	"plantnet/pkg/utils"

	"go.uber.org/zap"
)

type fakeAuth struct {
	tokens    map[string]string
	decisions map[string]usecase.Decision
	err       error
}

func (f *fakeAuth) IssueCredential(context.Context, *request.IssueTokenRequest) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not used")
}

func (f *fakeAuth) VerifyCredential(token string) (string, error) {
	email, ok := f.tokens[token]
	if !ok {
		return "", usecase.ErrUnauthenticated
	}
	return email, nil
}

func (f *fakeAuth) Authorize(_ context.Context, email string, capability usecase.Capability) (usecase.Decision, error) {
	if f.err != nil {
		return usecase.Decision{}, f.err
	}
	return f.decisions[email+"/"+string(capability)], nil
}

func echoEmail() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _ := utils.GetEmailFromContext(r.Context())
		w.Write([]byte(email))
	})
}

func TestAuthenticate(t *testing.T) {
	auth := &fakeAuth{tokens: map[string]string{"good": "a@example.com"}}
	h := Authenticate(auth, "token", zap.NewNop())(echoEmail())

	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		wantCode int
		wantBody string
	}{
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "good"}) }, http.StatusOK, "a@example.com"},
		{"bearer fallback", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK, "a@example.com"},
		{"missing", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"invalid cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "bad"}) }, http.StatusUnauthorized, ""},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic good") }, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRequireCapability(t *testing.T) {
	auth := &fakeAuth{decisions: map[string]usecase.Decision{
		"admin@example.com/admin": usecase.Allow(),
		"a@example.com/admin":     usecase.Deny("admin access required"),
	}}

	tests := []struct {
		name     string
		email    string
		err      error
		wantCode int
	}{
		{"allowed", "admin@example.com", nil, http.StatusOK},
		{"denied", "a@example.com", nil, http.StatusForbidden},
		{"no identity", "", nil, http.StatusUnauthorized},
		{"store failure", "admin@example.com", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth.err = tt.err
			h := RequireCapability(auth, usecase.CapabilityAdmin, zap.NewNop())(echoEmail())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.email != "" {
				req = req.WithContext(utils.SetUserContext(req.Context(), tt.email))
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	h := NewRateLimiter(0.001, 2, zap.NewNop()).Middleware()(echoEmail())

	codes := make([]int, 3)
	for i := range codes {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = rec.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", rec.Code)
	}
}

func TestCORSAllowsConfiguredOriginWithCredentials(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"})(echoEmail())

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"http://localhost:5173", "http://localhost:5173"},
		{"http://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("allow origin = %q, want %q", got, tt.wantAllow)
			}
			if tt.wantAllow != "" && rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("credentials not allowed")
			}
		})
	}
}
