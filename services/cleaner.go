package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"readingrabbit/internal/config"
	"readingrabbit/internal/httpx"
	"readingrabbit/internal/logger"
)

// CleanerService fixes OCR artifacts in extracted text with a chat-completion
// LLM. It is constructed explicitly and passed where needed; there is no
// package-level shared instance. A missing model or API key makes Clean a
// pass-through, and any API failure returns the original text so cleanup can
// never lose extracted content.
type CleanerService struct {
	endpoint string
	model    string
	apiKey   string
	template string
	client   *http.Client
}

// NewCleanerService creates a cleaner. endpoint is an OpenAI-compatible
// chat-completions URL; template must contain a {text} placeholder.
func NewCleanerService(endpoint, model, apiKey, template string) *CleanerService {
	return &CleanerService{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		template: template,
		client:   httpx.NewDefaultClient(),
	}
}

// Enabled reports whether cleanup will actually call the API.
func (c *CleanerService) Enabled() bool {
	return c.model != "" && c.apiKey != "" && c.endpoint != ""
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Clean sends one extracted line through the LLM and returns the cleaned
// text. On any failure the original text comes back unchanged.
func (c *CleanerService) Clean(ctx context.Context, text string) string {
	if text == "" || !c.Enabled() {
		return text
	}

	prompt := strings.ReplaceAll(c.template, "{text}", text)
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: config.CleanerMaxTokens,
	})
	if err != nil {
		return text
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return text
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := httpx.DoWithRetry(ctx, c.client, req, httpx.DefaultRetryConfig())
	if err != nil {
		logger.Warn("text cleanup request failed: %v", err)
		return text
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("text cleanup request failed: %s", resp.Status)
		return text
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return text
	}
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		logger.Warn("text cleanup returned unusable response: %v", err)
		return text
	}

	cleaned := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if cleaned == "" {
		return text
	}
	return cleaned
}

// String identifies the cleaner in logs without exposing the API key.
func (c *CleanerService) String() string {
	if !c.Enabled() {
		return "cleaner(disabled)"
	}
	return fmt.Sprintf("cleaner(%s)", c.model)
}
