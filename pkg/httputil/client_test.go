package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/moverboard/pkg/observability"
)

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantNil   bool
		notFound  bool
		retryable bool
	}{
		{code: 200, wantNil: true},
		{code: 204, wantNil: true},
		{code: 404, notFound: true},
		{code: 400},
		{code: 403},
		{code: 429, retryable: true},
		{code: 500, retryable: true},
		{code: 503, retryable: true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := CheckStatus(tt.code)
			if (err == nil) != tt.wantNil {
				t.Fatalf("CheckStatus(%d) = %v, want nil %v", tt.code, err, tt.wantNil)
			}
			if got := errors.Is(err, ErrNotFound); got != tt.notFound {
				t.Errorf("CheckStatus(%d) not found = %v, want %v", tt.code, got, tt.notFound)
			}
			if got := IsRetryable(err); got != tt.retryable {
				t.Errorf("CheckStatus(%d) retryable = %v, want %v", tt.code, got, tt.retryable)
			}
		})
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests  int
	responses int
	status    int
	path      string
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, _, _, path string) {
	h.requests++
	h.path = path
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _, _ string, code int, _ time.Duration) {
	h.responses++
	h.status = code
}

func TestNewClient(t *testing.T) {
	var gotUA, gotExtra string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotExtra = r.Header.Get("X-Test")
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	client := NewClient(WithTimeout(time.Second), WithHeader("X-Test", "yes"))
	resp, err := client.R().SetContext(context.Background()).Get(server.URL + "/logo.png")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Errorf("status = %d, want %d", resp.StatusCode(), http.StatusTeapot)
	}
	if !strings.HasPrefix(gotUA, "moverboard/") {
		t.Errorf("User-Agent = %q, want moverboard/ prefix", gotUA)
	}
	if gotExtra != "yes" {
		t.Errorf("X-Test = %q, want %q", gotExtra, "yes")
	}
	if hooks.requests != 1 || hooks.responses != 1 {
		t.Errorf("requests/responses = %d/%d, want 1/1", hooks.requests, hooks.responses)
	}
	if hooks.status != http.StatusTeapot {
		t.Errorf("hook status = %d, want %d", hooks.status, http.StatusTeapot)
	}
	if hooks.path != "/logo.png" {
		t.Errorf("hook path = %q, want %q", hooks.path, "/logo.png")
	}
}

func TestCheckResponseRetryAfter(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		header    string
		wantRetry bool
		wantAfter time.Duration
	}{
		{name: "seconds", status: http.StatusTooManyRequests, header: "3", wantRetry: true, wantAfter: 3 * time.Second},
		{name: "http date ignored", status: http.StatusServiceUnavailable, header: "Wed, 21 Oct 2026 07:28:00 GMT", wantRetry: true},
		{name: "no header", status: http.StatusBadGateway, wantRetry: true},
		{name: "not retryable", status: http.StatusNotFound, header: "3"},
		{name: "ok", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.header != "" {
					w.Header().Set("Retry-After", tt.header)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			resp, err := NewClient().R().Get(server.URL)
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			err = CheckResponse(resp)
			var re *RetryableError
			if got := errors.As(err, &re); got != tt.wantRetry {
				t.Fatalf("CheckResponse() = %v, retryable %v, want %v", err, got, tt.wantRetry)
			}
			if re != nil && re.After != tt.wantAfter {
				t.Errorf("After = %v, want %v", re.After, tt.wantAfter)
			}
		})
	}
}
