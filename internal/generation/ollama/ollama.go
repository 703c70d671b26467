package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"docchat/internal/domain"
)

// Client generates completions through a local Ollama server's /api/chat
// endpoint.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 120 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: t},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	messages := make([]message, 0, len(req.History)+2)
	messages = append(messages, message{Role: string(domain.RoleSystem), Content: req.System})
	for _, turn := range req.History {
		messages = append(messages, message{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, message{Role: string(domain.RoleUser), Content: req.UserMessage})

	payload := map[string]any{
		"model":    c.model,
		"messages": messages,
		"stream":   false,
	}
	data, _ := json.Marshal(payload)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama chat failed: %s", resp.Status)
	}
	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ollama chat decode: %w", err)
	}
	return out.Message.Content, nil
}
