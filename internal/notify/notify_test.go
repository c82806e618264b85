package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestTelegramSenderPostsToChat(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":7,"date":1711526400,"chat":{"id":42,"type":"private"},"text":"hello"}}`)
	}))
	defer server.Close()

	sender, err := NewTelegramSender("123:test-token", 42, WithAPIURL(server.URL))
	if err != nil {
		t.Fatalf("create sender: %v", err)
	}
	if err := sender.SendReminder(context.Background(), "hello"); err != nil {
		t.Fatalf("send reminder: %v", err)
	}

	if gotPath != "/bot123:test-token/sendMessage" {
		t.Fatalf("expected sendMessage call, got path %q", gotPath)
	}
	if gotBody["chat_id"] != "42" || gotBody["text"] != "hello" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
}

func TestTelegramSenderReportsAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`)
	}))
	defer server.Close()

	sender, err := NewTelegramSender("123:test-token", 42, WithAPIURL(server.URL))
	if err != nil {
		t.Fatalf("create sender: %v", err)
	}
	err = sender.SendReminder(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "telegram send") {
		t.Fatalf("expected wrapped telegram error, got %v", err)
	}
}

func TestTelegramSenderHonorsCanceledContext(t *testing.T) {
	sender, err := NewTelegramSender("123:test-token", 42, WithAPIURL("http://127.0.0.1:1"))
	if err != nil {
		t.Fatalf("create sender: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sender.SendReminder(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewTelegramSenderRequiresChat(t *testing.T) {
	if _, err := NewTelegramSender("123:test-token", 0); !errors.Is(err, ErrTelegramChatMissing) {
		t.Fatalf("expected ErrTelegramChatMissing, got %v", err)
	}
}

func TestLogSenderWritesMessage(t *testing.T) {
	logger, hook := test.NewNullLogger()
	if err := NewLogSender(logger).SendReminder(context.Background(), "period in 2 days"); err != nil {
		t.Fatalf("send reminder: %v", err)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "period in 2 days" || entry.Level != logrus.InfoLevel {
		t.Fatalf("expected info entry with the reminder, got %+v", entry)
	}
}
