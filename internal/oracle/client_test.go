package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cipherfeed/client-go/internal/audit"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL), WithRetries(0)}, opts...)
	client, err := New("test-key", opts...)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestClassify_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != classifyPath {
			t.Errorf("path = %s, want %s", r.URL.Path, classifyPath)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "sanitized draft with [EMAIL_1]" {
			t.Errorf("text = %q", req.Text)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"riskLevel":  "HIGH",
			"warnings":   []string{"contact details exposed"},
			"safeToPost": false,
		})
	})

	verdict, err := client.Classify(context.Background(), "sanitized draft with [EMAIL_1]")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if verdict.Level != audit.LevelHigh {
		t.Errorf("level = %s, want HIGH", verdict.Level)
	}
	if verdict.SafeToPost {
		t.Error("safeToPost = true, want false")
	}
	if len(verdict.Warnings) != 1 || verdict.Warnings[0] != "contact details exposed" {
		t.Errorf("warnings = %v", verdict.Warnings)
	}
}

func TestClassify_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway error</html>`},
		{"missing riskLevel", `{"warnings":[],"safeToPost":true}`},
		{"missing safeToPost", `{"riskLevel":"LOW","warnings":[]}`},
		{"unknown level", `{"riskLevel":"PANIC","warnings":[],"safeToPost":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.Classify(context.Background(), "text")
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestClassify_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error":      "rate limited",
			"request_id": "req-1",
		})
	})

	_, err := client.Classify(context.Background(), "text")

	var oracleErr *Error
	if !errors.As(err, &oracleErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if oracleErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", oracleErr.StatusCode)
	}
	if oracleErr.Message != "rate limited" {
		t.Errorf("message = %q", oracleErr.Message)
	}
}

func TestClassify_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"riskLevel":  "LOW",
			"warnings":   []string{},
			"safeToPost": true,
		})
	}))
	defer server.Close()

	client, err := New("test-key", WithBaseURL(server.URL), WithRetries(3))
	if err != nil {
		t.Fatal(err)
	}

	verdict, err := client.Classify(context.Background(), "text")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if verdict.Level != audit.LevelLow {
		t.Errorf("level = %s", verdict.Level)
	}
}

func TestClassify_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Classify(ctx, "text")
	if err == nil {
		t.Fatal("expected error")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("Classify did not honor context deadline")
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty API key")
	}
}
