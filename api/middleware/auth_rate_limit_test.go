package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
)

func postAuth(t *testing.T, handler http.Handler, remoteAddr, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return payload.Error.Code
}

func TestAuthRateLimitPreservesBody(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 2)
	handler := AuthRateLimit(policy, newFakeRateStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if !strings.Contains(string(body), `"email":"tester@example.com"`) {
			t.Fatalf("body not restored for handler: %s", string(body))
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := postAuth(t, handler, "1.2.3.4:5678", `{"email":"tester@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRateLimitEmailCounter(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	handler := AuthRateLimit(policy, newFakeRateStore(), nil)(okHandler())

	body := `{"email":"blocked@example.com","password":"secret"}`
	for i := 0; i < 2; i++ {
		if rec := postAuth(t, handler, "1.2.3.4:5678", body); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 under limit, got %d", i+1, rec.Code)
		}
	}

	rec := postAuth(t, handler, "1.2.3.4:5678", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over limit, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != string(pkgerrors.CodeRateLimit) {
		t.Fatalf("unexpected error code: %s", code)
	}
}

func TestAuthRateLimitIPCounter(t *testing.T) {
	policy := NewAuthRateLimitPolicy("register", time.Minute, 1, 0)
	handler := AuthRateLimit(policy, newFakeRateStore(), nil)(okHandler())

	body := `{"email":"foo@example.com","password":"secret"}`
	if rec := postAuth(t, handler, "5.6.7.8:1234", body); rec.Code != http.StatusOK {
		t.Fatalf("first attempt should pass, got %d", rec.Code)
	}
	if rec := postAuth(t, handler, "5.6.7.8:1234", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt should be blocked, got %d", rec.Code)
	}

	// a different address keeps its own counter
	if rec := postAuth(t, handler, "9.9.9.9:1234", body); rec.Code != http.StatusOK {
		t.Fatalf("other address should pass, got %d", rec.Code)
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

type fakeRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{counts: map[string]int64{}}
}

func (f *fakeRateStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}
