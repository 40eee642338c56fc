package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCleanerDisabledWithoutModel(t *testing.T) {
	c := NewCleanerService("https://example.com/v1/chat/completions", "", "key", "{text}")
	if c.Enabled() {
		t.Error("cleaner with empty model should be disabled")
	}
	if got := c.Clean(context.Background(), "raw ocr text"); got != "raw ocr text" {
		t.Errorf("disabled Clean() = %q, want pass-through", got)
	}
}

func TestCleanerDisabledWithoutKey(t *testing.T) {
	c := NewCleanerService("https://example.com/v1/chat/completions", "deepseek-chat", "", "{text}")
	if c.Enabled() {
		t.Error("cleaner with empty api key should be disabled")
	}
}

func TestCleanerEmptyTextPassesThrough(t *testing.T) {
	c := NewCleanerService("https://example.com", "deepseek-chat", "key", "{text}")
	if got := c.Clean(context.Background(), ""); got != "" {
		t.Errorf("Clean(\"\") = %q, want empty", got)
	}
}

func TestCleanerClean(t *testing.T) {
	var gotAuth string
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" Clean text. "}}]}`))
	}))
	defer server.Close()

	c := NewCleanerService(server.URL, "deepseek-chat", "secret", "Fix this: {text}")
	got := c.Clean(context.Background(), "c1ean t3xt")

	if got != "Clean text." {
		t.Errorf("Clean() = %q, want trimmed response content", got)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if !strings.Contains(gotBody, "Fix this: c1ean t3xt") {
		t.Errorf("prompt template not applied: %s", gotBody)
	}
	if !strings.Contains(gotBody, `"model":"deepseek-chat"`) {
		t.Errorf("model missing from request: %s", gotBody)
	}
}

func TestCleanerServerErrorReturnsOriginal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewCleanerService(server.URL, "deepseek-chat", "key", "{text}")
	if got := c.Clean(context.Background(), "original"); got != "original" {
		t.Errorf("Clean() after API error = %q, want original", got)
	}
}

func TestCleanerEmptyChoicesReturnsOriginal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := NewCleanerService(server.URL, "deepseek-chat", "key", "{text}")
	if got := c.Clean(context.Background(), "original"); got != "original" {
		t.Errorf("Clean() with empty choices = %q, want original", got)
	}
}

func TestCleanerCancelledContextReturnsOriginal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCleanerService("https://example.com", "deepseek-chat", "key", "{text}")
	if got := c.Clean(ctx, "original"); got != "original" {
		t.Errorf("Clean() with cancelled context = %q, want original", got)
	}
}

func TestCleanerString(t *testing.T) {
	c := NewCleanerService("https://example.com", "deepseek-chat", "super-secret", "{text}")
	if strings.Contains(c.String(), "super-secret") {
		t.Errorf("String() leaks the api key: %s", c.String())
	}
	disabled := NewCleanerService("", "", "", "")
	if disabled.String() != "cleaner(disabled)" {
		t.Errorf("String() = %q", disabled.String())
	}
}
