package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func TestGenerateSendsOrderedMessages(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Stream   bool   `json:"stream"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"hello back"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Model: "llama3.2", Timeout: time.Second})
	out, err := c.Generate(context.Background(), domain.GenerationRequest{
		System: "be helpful",
		History: []domain.Turn{
			{Role: domain.RoleUser, Content: "hi"},
			{Role: domain.RoleAssistant, Content: "hey"},
		},
		UserMessage: "how are you",
	})
	require.NoError(t, err)
	require.Equal(t, "hello back", out)

	require.False(t, got.Stream)
	require.Equal(t, "llama3.2", got.Model)
	require.Len(t, got.Messages, 4)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "be helpful", got.Messages[0].Content)
	require.Equal(t, "hi", got.Messages[1].Content)
	require.Equal(t, "hey", got.Messages[2].Content)
	require.Equal(t, "user", got.Messages[3].Role)
	require.Equal(t, "how are you", got.Messages[3].Content)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.Generate(context.Background(), domain.GenerationRequest{UserMessage: "hi"})
	require.Error(t, err)
}
