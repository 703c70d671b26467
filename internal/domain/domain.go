package domain

// Kind identifies the format of an uploaded document.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindText Kind = "text"
)

// Document is a single uploaded file awaiting ingestion.
// It is consumed once by the extractor and not retained afterwards.
type Document struct {
	ID   string
	Name string
	Kind Kind
	Data []byte
}

// Chunk is a bounded substring of the extracted corpus used for indexing.
// IDs are sequential per ingestion run, starting at 0. Start and End are
// byte offsets into the corpus the chunk was cut from.
type Chunk struct {
	ID    int
	Text  string
	Start int
	End   int
}

// ScoredChunk is a chunk returned from a similarity search with its score.
// Higher score means more similar.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Role of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the dialogue history.
type Turn struct {
	Role    Role
	Content string
}

// GenerationRequest is the fully assembled payload handed to the
// generation provider. History is the prior conversation in original
// order; the new user message is carried separately and goes last.
type GenerationRequest struct {
	System      string
	History     []Turn
	UserMessage string
}

// SearchResult is one hit returned by the web search provider.
type SearchResult struct {
	Title   string
	Snippet string
	URL     string
}

// IngestResult reports the outcome of processing a document batch.
type IngestResult struct {
	ChunkCount int
	Skipped    []string
	Summary    string
}
