package retriever

import (
	"strings"

	"docchat/internal/domain"
)

// Session binds one embedder instance to the vector store that was built
// with it. Queries must be embedded by the same instance that embedded
// the index, or relevance silently degrades; holding both in one value
// makes that binding structural. A Session is immutable once built and
// is replaced wholesale on re-ingestion.
type Session struct {
	embedder domain.Embedder
	store    domain.VectorStore
	count    int
}

// NewSession wraps a fully built index. count is the number of indexed
// chunks; a zero-count session is the valid "empty corpus" state.
func NewSession(embedder domain.Embedder, store domain.VectorStore, count int) *Session {
	return &Session{embedder: embedder, store: store, count: count}
}

// ChunkCount reports how many chunks the session has indexed.
func (s *Session) ChunkCount() int { return s.count }

// Retrieve embeds the query and returns the top-k chunk texts joined
// with a blank line, nearest first. An empty corpus yields an empty
// string and no error.
func (s *Session) Retrieve(query string, topK int) (string, error) {
	if s.count == 0 {
		return "", nil
	}
	vec, err := s.embedder.Embed(query)
	if err != nil {
		return "", err
	}
	results, err := s.store.Search(vec, topK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Chunk.Text
	}
	return strings.Join(texts, "\n\n"), nil
}
