package composer

import (
	"fmt"
	"strings"

	"docchat/internal/domain"
)

// systemPreamble is the fixed persona instruction included in every
// request, before any augmentation context.
const systemPreamble = `You are a helpful AI assistant.

You have access to two tools:
1. Uploaded documents (if available) - search these for questions about the documents
2. Web search - use this for current events, facts, or things not in the documents

When answering questions about tables or structured data:
- Look carefully for the specific item/row the user is asking about
- Pay attention to column headers to identify what each number represents
- Be precise with numbers - don't round or approximate unless asked

Be conversational and helpful!`

// triggerWords fire the live-search augmentation when any of them occurs
// in the user message. This is an intentionally coarse heuristic, not a
// classifier: "find my document" triggers a search it does not need, and
// "what happened this week" misses one it could use.
var triggerWords = []string{"current", "latest", "today", "news", "search", "google", "find"}

// ShouldSearch reports whether the message matches the live-search
// trigger heuristic (case-insensitive substring match).
func ShouldSearch(message string) bool {
	lower := strings.ToLower(message)
	for _, w := range triggerWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Augmentation carries the context gathered for one user turn. The
// composer itself performs no retrieval or network calls; the caller
// passes in whatever it collected.
type Augmentation struct {
	// DocumentContext is the retrieved chunk text, empty when no corpus
	// is loaded or nothing matched.
	DocumentContext string
	// SearchAttempted marks that a live search was triggered, so the
	// request carries a search block even when results are empty or the
	// provider failed.
	SearchAttempted bool
	SearchResults   []domain.SearchResult
	SearchErr       error
}

// Compose assembles the generation request for one user turn: the fixed
// persona preamble with the labeled context blocks appended (documents
// first, then search), the prior history verbatim and in order, and the
// new user message last. It is a pure transformation.
func Compose(userMessage string, history []domain.Turn, aug Augmentation) domain.GenerationRequest {
	var context strings.Builder
	if aug.DocumentContext != "" {
		context.WriteString("\n\nRELEVANT DOCUMENT CONTENT:\n")
		context.WriteString(aug.DocumentContext)
	}
	if aug.SearchAttempted {
		context.WriteString("\n\n")
		context.WriteString(formatSearch(aug))
	}

	system := systemPreamble
	if context.Len() > 0 {
		system += "\n\nADDITIONAL CONTEXT:" + context.String()
	}

	hist := make([]domain.Turn, len(history))
	copy(hist, history)
	return domain.GenerationRequest{
		System:      system,
		History:     hist,
		UserMessage: userMessage,
	}
}

// formatSearch renders the search block. A provider failure becomes a
// short inline notice inserted verbatim so generation proceeds without
// the augmentation.
func formatSearch(aug Augmentation) string {
	if aug.SearchErr != nil {
		return "Sorry, search failed: " + aug.SearchErr.Error()
	}
	var b strings.Builder
	b.WriteString("Web Search Results:\n\n")
	if len(aug.SearchResults) == 0 {
		b.WriteString("No results found.\n")
		return b.String()
	}
	for i, r := range aug.SearchResults {
		fmt.Fprintf(&b, "%d. %s\n   %s\n   Source: %s\n\n", i+1, r.Title, r.Snippet, r.URL)
	}
	return b.String()
}
