package composer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func TestShouldSearch(t *testing.T) {
	require.True(t, ShouldSearch("What's the latest news on AI?"))
	require.True(t, ShouldSearch("SEARCH for gophers"))
	require.True(t, ShouldSearch("find my document")) // known false positive
	require.False(t, ShouldSearch("Summarize the intro"))
	require.False(t, ShouldSearch(""))
}

func TestComposeSearchOnlyEmptyCorpus(t *testing.T) {
	req := Compose("What's the latest news on AI?", nil, Augmentation{
		SearchAttempted: true,
		SearchResults: []domain.SearchResult{
			{Title: "AI breakthrough", Snippet: "Something happened.", URL: "https://example.org/a"},
		},
	})
	require.Contains(t, req.System, "Web Search Results:")
	require.Contains(t, req.System, "1. AI breakthrough")
	require.Contains(t, req.System, "Source: https://example.org/a")
	require.NotContains(t, req.System, "RELEVANT DOCUMENT CONTENT:")
	require.Equal(t, "What's the latest news on AI?", req.UserMessage)
}

func TestComposeDocumentOnlyNoTrigger(t *testing.T) {
	req := Compose("Summarize the intro", nil, Augmentation{
		DocumentContext: "The intro covers chunking.",
	})
	require.Contains(t, req.System, "RELEVANT DOCUMENT CONTENT:\nThe intro covers chunking.")
	require.NotContains(t, req.System, "Web Search Results:")
}

func TestComposeNoAugmentation(t *testing.T) {
	req := Compose("hi", nil, Augmentation{})
	require.NotContains(t, req.System, "ADDITIONAL CONTEXT:")
	require.Contains(t, req.System, "You are a helpful AI assistant.")
}

func TestComposeDocumentBlockPrecedesSearchBlock(t *testing.T) {
	req := Compose("find the latest totals", nil, Augmentation{
		DocumentContext: "Totals table.",
		SearchAttempted: true,
		SearchResults:   []domain.SearchResult{{Title: "t", Snippet: "s", URL: "u"}},
	})
	docIdx := strings.Index(req.System, "RELEVANT DOCUMENT CONTENT:")
	searchIdx := strings.Index(req.System, "Web Search Results:")
	require.GreaterOrEqual(t, docIdx, 0)
	require.Greater(t, searchIdx, docIdx)
}

func TestComposeSearchFailureNotice(t *testing.T) {
	req := Compose("latest scores", nil, Augmentation{
		SearchAttempted: true,
		SearchErr:       errors.New("connection refused"),
	})
	require.Contains(t, req.System, "Sorry, search failed: connection refused")
	require.NotContains(t, req.System, "Web Search Results:")
}

func TestComposePreservesHistoryOrder(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "first"},
		{Role: domain.RoleAssistant, Content: "second"},
		{Role: domain.RoleUser, Content: "third"},
	}
	req := Compose("fourth", history, Augmentation{})
	require.Equal(t, history, req.History)
	require.Equal(t, "fourth", req.UserMessage)

	// The request holds a copy; mutating it must not touch the caller's
	// history.
	req.History[0].Content = "mutated"
	require.Equal(t, "first", history[0].Content)
}
