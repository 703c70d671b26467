package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"docchat/internal/composer"
	"docchat/internal/domain"
	"docchat/internal/retriever"
)

// ChatService wires the ingestion pipeline (extract, chunk, embed, index)
// to the per-turn pipeline (retrieve, search, compose, generate).
//
// The active retrieval session is the only mutable state. Ingestion
// builds a complete new session off to the side and swaps it in
// atomically, so a query never observes a half-built index; re-ingesting
// replaces the prior corpus wholesale.
type ChatService struct {
	extractor   domain.Extractor
	chunker     domain.Chunker
	newEmbedder func() (domain.Embedder, error)
	newStore    func() domain.VectorStore
	search      domain.SearchProvider
	generator   domain.Generator
	summarizer  domain.Summarizer
	logger      *zap.Logger

	topK          int
	searchResults int
	maxSummary    int

	ingestMu sync.Mutex // serializes ingestion runs

	sessionMu sync.RWMutex
	session   *retriever.Session
}

type Config struct {
	Extractor   domain.Extractor
	Chunker     domain.Chunker
	NewEmbedder func() (domain.Embedder, error)
	NewStore    func() domain.VectorStore
	Search      domain.SearchProvider
	Generator   domain.Generator
	Summarizer  domain.Summarizer
	Logger      *zap.Logger

	// TopK is how many chunks a query retrieves.
	TopK int
	// SearchResults caps live-search hits per query.
	SearchResults int
	// SummarySentences caps the post-ingest corpus summary.
	SummarySentences int
}

func New(cfg Config) (*ChatService, error) {
	if cfg.Extractor == nil || cfg.Chunker == nil || cfg.NewEmbedder == nil || cfg.NewStore == nil || cfg.Generator == nil {
		return nil, errors.New("extractor, chunker, embedder, store and generator are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.SearchResults <= 0 {
		cfg.SearchResults = 3
	}
	if cfg.SummarySentences <= 0 {
		cfg.SummarySentences = 3
	}
	return &ChatService{
		extractor:     cfg.Extractor,
		chunker:       cfg.Chunker,
		newEmbedder:   cfg.NewEmbedder,
		newStore:      cfg.NewStore,
		search:        cfg.Search,
		generator:     cfg.Generator,
		summarizer:    cfg.Summarizer,
		logger:        cfg.Logger,
		topK:          cfg.TopK,
		searchResults: cfg.SearchResults,
		maxSummary:    cfg.SummarySentences,
	}, nil
}

// Ingest processes a document batch into a fresh retrieval session.
// Decoding failures skip the affected document and the rest of the batch
// proceeds (best-effort policy); the skipped names are reported back.
// An empty batch or empty documents yield a valid empty session.
func (s *ChatService) Ingest(ctx context.Context, docs []domain.Document) (domain.IngestResult, error) {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	var result domain.IngestResult
	var blob strings.Builder
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		text, err := s.extractor.Extract(doc)
		if err != nil {
			s.logger.Warn("skipping document",
				zap.String("document", doc.Name),
				zap.Error(err),
			)
			result.Skipped = append(result.Skipped, doc.Name)
			continue
		}
		blob.WriteString(text)
		blob.WriteString("\n\n")
	}

	corpus := blob.String()
	chunks, err := s.chunker.Chunk(corpus)
	if err != nil {
		return result, err
	}

	embedder, err := s.newEmbedder()
	if err != nil {
		return result, err
	}
	store := s.newStore()

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, ch := range chunks {
			texts[i] = ch.Text
		}
		if err := embedder.Prepare(texts); err != nil {
			return result, err
		}
		vectors, err := embedder.EmbedBatch(texts)
		if err != nil {
			return result, err
		}
		if err := store.Init(embedder.Dimension()); err != nil {
			return result, err
		}
		if err := store.Upsert(chunks, vectors); err != nil {
			return result, err
		}
	}

	if s.summarizer != nil && strings.TrimSpace(corpus) != "" {
		summary, err := s.summarizer.Summarize(corpus, s.maxSummary)
		if err == nil {
			result.Summary = summary
		}
	}

	// The session becomes visible only after the index is fully built.
	s.sessionMu.Lock()
	s.session = retriever.NewSession(embedder, store, len(chunks))
	s.sessionMu.Unlock()

	result.ChunkCount = len(chunks)
	s.logger.Info("ingested documents",
		zap.Int("documents", len(docs)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("chunks", result.ChunkCount),
		zap.String("embedder", embedder.Name()),
	)
	return result, nil
}

// DocumentsLoaded reports whether an ingestion run has completed, even
// one that produced an empty corpus.
func (s *ChatService) DocumentsLoaded() bool {
	s.sessionMu.RLock()
	defer s.sessionMu.RUnlock()
	return s.session != nil
}

func (s *ChatService) currentSession() *retriever.Session {
	s.sessionMu.RLock()
	defer s.sessionMu.RUnlock()
	return s.session
}

// Respond handles one user turn: retrieve document context when a corpus
// is loaded, run a live search when the message triggers it, compose the
// request and call the generator. Search failures degrade to an inline
// notice; they never block the response.
func (s *ChatService) Respond(ctx context.Context, userMessage string, history []domain.Turn) (string, error) {
	var aug composer.Augmentation

	if sess := s.currentSession(); sess != nil {
		docContext, err := sess.Retrieve(userMessage, s.topK)
		if err != nil {
			return "", err
		}
		aug.DocumentContext = docContext
	}

	if s.search != nil && composer.ShouldSearch(userMessage) {
		aug.SearchAttempted = true
		results, err := s.search.Search(ctx, userMessage, s.searchResults)
		if err != nil {
			s.logger.Warn("live search failed", zap.Error(err))
			aug.SearchErr = err
		} else {
			aug.SearchResults = results
		}
	}

	req := composer.Compose(userMessage, history, aug)
	return s.generator.Generate(ctx, req)
}
