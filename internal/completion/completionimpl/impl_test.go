package completionimpl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/completion"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	apperrors "github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
)

func newClient(endpoint string) *OpenAI {
	cfg := &config.Config{}
	cfg.Completion.Endpoint = endpoint
	cfg.Completion.APIKey = "sk-test"
	cfg.Completion.Model = "gpt-4o-mini"
	cfg.Completion.Temperature = 0.5
	cfg.Completion.Timeout = 5 * time.Second
	return New(Opts{Config: cfg, Logger: logger.NewNop()})
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer key: %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"[]"}}]}`))
	}))
	defer srv.Close()

	out, err := newClient(srv.URL).Complete(context.Background(), completion.Request{System: "rules", User: "post context date: 2024-03-04T10:00:00Z"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "[]" {
		t.Fatalf("content = %q", out)
	}
	if got.Model != "gpt-4o-mini" || got.Temperature != 0.5 || len(got.Messages) != 2 {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.Messages[0].Role != "system" || got.Messages[1].Content != "post context date: 2024-03-04T10:00:00Z" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestCompleteHTTPErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad model"}}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Complete(context.Background(), completion.Request{})
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("want ErrTransport, got %v", err)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Complete(context.Background(), completion.Request{})
	if !errors.Is(err, completion.ErrEmptyCompletion) {
		t.Fatalf("want ErrEmptyCompletion, got %v", err)
	}
}

func TestCompleteMakesOneRequestPerCall(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Complete(context.Background(), completion.Request{})
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("want ErrTransport, got %v", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("status code missing from error: %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("completion service hit %d times, want 1", n)
	}
}
