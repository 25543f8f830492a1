package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gourab8389/blog-author/internal/common"
)

// Client is a thin passthrough to an OpenAI-compatible chat completions API.
// It owns no state beyond the HTTP client; the text it returns is served to
// the caller verbatim.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, apiKey, model string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// SuggestTitle asks the model for a blog title based on draft content.
func (c *Client) SuggestTitle(ctx context.Context, content string) (string, error) {
	v := common.NewValidator()
	v.Check(content != "", "content", "must be provided")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	prompt := fmt.Sprintf("Suggest a short, engaging title for this blog post. Reply with the title only.\n\n%s", content)
	return c.complete(ctx, prompt)
}

// SuggestDescription asks the model for a one-paragraph description.
func (c *Client) SuggestDescription(ctx context.Context, title, content string) (string, error) {
	v := common.NewValidator()
	v.Check(title != "" || content != "", "content", "title or content must be provided")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	prompt := fmt.Sprintf("Write a one-sentence description for a blog post titled %q. Reply with the description only.\n\n%s", title, content)
	return c.complete(ctx, prompt)
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
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

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not reach AI API: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		c.logger.Error("AI API returned an error", slog.Int("status", res.StatusCode), slog.String("body", string(payload)))
		return "", fmt.Errorf("AI API returned status %d", res.StatusCode)
	}

	var parsed chatResponse
	err = json.NewDecoder(res.Body).Decode(&parsed)
	if err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("AI API returned no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
