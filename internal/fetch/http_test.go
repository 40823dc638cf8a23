package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestHTTP(retries int) *HTTP {
	h := NewHTTP(Options{MaxRetries: retries, Timeout: 5 * time.Second})
	h.initialInterval = time.Millisecond
	return h
}

func TestHTTP_FetchPage(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []int
		retries   int
		wantError bool
		wantCalls int32
	}{
		{
			name:      "success",
			statuses:  []int{http.StatusOK},
			retries:   3,
			wantCalls: 1,
		},
		{
			name:      "retry after server error",
			statuses:  []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusOK},
			retries:   3,
			wantCalls: 3,
		},
		{
			name:      "no retry on not found",
			statuses:  []int{http.StatusNotFound},
			retries:   3,
			wantError: true,
			wantCalls: 1,
		},
		{
			name:      "retries exhausted",
			statuses:  []int{http.StatusServiceUnavailable},
			retries:   2,
			wantError: true,
			wantCalls: 3,
		},
		{
			name:      "too many requests is retried",
			statuses:  []int{http.StatusTooManyRequests, http.StatusOK},
			retries:   1,
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "vb-schedule") {
					t.Errorf("User-Agent = %q, should contain 'vb-schedule'", ua)
				}
				status := tt.statuses[len(tt.statuses)-1]
				if int(n) <= len(tt.statuses) {
					status = tt.statuses[n-1]
				}
				w.WriteHeader(status)
				w.Write([]byte("<html><body>ok</body></html>")) // nolint:errcheck
			}))
			defer server.Close()

			body, err := newTestHTTP(tt.retries).FetchPage(context.Background(), server.URL)

			if tt.wantError {
				if err == nil {
					t.Error("FetchPage() expected error, got nil")
				}
			} else {
				if err != nil {
					t.Fatalf("FetchPage() unexpected error: %v", err)
				}
				if !strings.Contains(string(body), "ok") {
					t.Errorf("FetchPage() body = %q", body)
				}
			}
			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("server saw %d requests, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestHTTP_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestHTTP(0).FetchFile(context.Background(), server.URL+"/schedule.pdf")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("FetchFile() error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", se.StatusCode)
	}
}

func TestHTTP_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestHTTP(5).FetchPage(ctx, server.URL); err == nil {
		t.Error("FetchPage() with cancelled context expected error, got nil")
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(Options{}, false).(*HTTP); !ok {
		t.Error("New(useBrowser=false) should return *HTTP")
	}
	if _, ok := New(Options{}, true).(*Browser); !ok {
		t.Error("New(useBrowser=true) should return *Browser")
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{MaxRetries: -1}.withDefaults()

	if o.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", o.UserAgent)
	}
	if o.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", o.Timeout)
	}
	if o.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", o.MaxRetries)
	}
}
