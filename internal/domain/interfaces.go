package domain

import "context"

// Extractor converts an uploaded document into a single normalized text blob.
type Extractor interface {
	Extract(doc Document) (string, error)
}

// Chunker splits a text blob into chunks suitable for embedding.
type Chunker interface {
	Chunk(text string) ([]Chunk, error)
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
// Embedding is deterministic: identical text on the same prepared
// instance yields the identical vector.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
	EmbedBatch(texts []string) ([][]float64, error)
}

// VectorStore holds chunk embeddings and supports similarity search.
// Init resets the store to an empty collection of the given dimension;
// upserting a chunk with an id already present overwrites it.
type VectorStore interface {
	Init(dimension int) error
	Upsert(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]ScoredChunk, error)
	Clear() error
}

// SearchProvider performs a live web search.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// Generator produces a completion for an assembled request.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
