package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"docchat/internal/chunker"
	"docchat/internal/config"
	"docchat/internal/domain"
	embollama "docchat/internal/embedding/ollama"
	embopenai "docchat/internal/embedding/openai"
	"docchat/internal/embedding/tfidf"
	"docchat/internal/extract"
	genollama "docchat/internal/generation/ollama"
	genopenai "docchat/internal/generation/openai"
	"docchat/internal/search/duckduckgo"
	"docchat/internal/service"
	"docchat/internal/summarizer"
	"docchat/internal/tui"
	"docchat/internal/vectorstore/memory"
	"docchat/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docchat/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	// Assemble components
	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "window", "":
		ch, err = chunker.NewWindowChunker(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap, cfg.Chunker.BoundaryAware)
		if err != nil {
			log.Fatalf("chunker config invalid: %v", err)
		}
	case "sentence":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		log.Fatalf("unknown chunker: %s", cfg.Chunker.Type)
	}

	newEmbedder := embedderFactory(cfg.Embedder)
	newStore := storeFactory(cfg.VectorStore)

	var searchProvider domain.SearchProvider
	if cfg.Search.Enabled {
		searchProvider = duckduckgo.NewClient(duckduckgo.Config{
			BaseURL: cfg.Search.BaseURL,
			Timeout: time.Duration(cfg.Search.TimeoutSecs) * time.Second,
		})
	}

	gen := buildGenerator(cfg.Generator)

	svc, err := service.New(service.Config{
		Extractor:        extract.New(nil, logger),
		Chunker:          ch,
		NewEmbedder:      newEmbedder,
		NewStore:         newStore,
		Search:           searchProvider,
		Generator:        gen,
		Summarizer:       summarizer.NewFrequencySummarizer(),
		Logger:           logger,
		TopK:             cfg.Retrieval.TopK,
		SearchResults:    cfg.Search.MaxResults,
		SummarySentences: cfg.Summarizer.MaxSentences,
	})
	if err != nil {
		log.Fatalf("service init failed: %v", err)
	}

	banner := "No documents loaded. Pass .pdf/.txt files as arguments to chat with them."
	if len(inputs) > 0 {
		docs, err := loadDocuments(inputs)
		if err != nil {
			log.Fatalf("load documents: %v", err)
		}
		result, err := svc.Ingest(context.Background(), docs)
		if err != nil {
			log.Fatalf("ingest failed: %v", err)
		}
		banner = fmt.Sprintf("Loaded %d chunks from %d file(s).", result.ChunkCount, len(docs)-len(result.Skipped))
		if len(result.Skipped) > 0 {
			banner += fmt.Sprintf(" Skipped: %s.", strings.Join(result.Skipped, ", "))
		}
		if result.Summary != "" {
			banner += " " + result.Summary
		}
	}

	if _, err := tea.NewProgram(tui.New(svc, banner)).Run(); err != nil {
		log.Fatal(err)
	}
}

func newLogger(cfg config.LogConfig) *zap.Logger {
	if cfg.File == "" {
		return zap.NewNop()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{cfg.File}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	return logger
}

func embedderFactory(cfg config.EmbedderConfig) func() (domain.Embedder, error) {
	switch cfg.Type {
	case "tfidf", "":
		return func() (domain.Embedder, error) { return tfidf.New(), nil }
	case "ollama":
		return func() (domain.Embedder, error) {
			var c config.OllamaConfig
			if cfg.Ollama != nil {
				c = *cfg.Ollama
			}
			return embollama.NewClient(embollama.Config{
				BaseURL: c.BaseURL,
				Model:   c.Model,
				Timeout: time.Duration(c.TimeoutSecs) * time.Second,
			}), nil
		}
	case "openai":
		return func() (domain.Embedder, error) {
			if cfg.OpenAI == nil {
				return nil, fmt.Errorf("openai embedder config missing")
			}
			return embopenai.NewClient(embopenai.Config{
				BaseURL:   cfg.OpenAI.BaseURL,
				APIKeyEnv: cfg.OpenAI.APIKeyEnv,
				Model:     cfg.OpenAI.Model,
				Timeout:   time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
			})
		}
	default:
		log.Fatalf("unknown embedder: %s", cfg.Type)
		return nil
	}
}

func storeFactory(cfg config.VectorStoreConfig) func() domain.VectorStore {
	switch cfg.Type {
	case "memory", "":
		return func() domain.VectorStore { return memory.NewStore() }
	case "qdrant":
		if cfg.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		qcfg := qdrant.Config{
			URL:        cfg.Qdrant.URL,
			APIKey:     cfg.Qdrant.APIKey,
			Collection: cfg.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Qdrant.TimeoutSecs) * time.Second,
		}
		return func() domain.VectorStore { return qdrant.NewStore(qcfg) }
	default:
		log.Fatalf("unknown vector store: %s", cfg.Type)
		return nil
	}
}

func buildGenerator(cfg config.GeneratorConfig) domain.Generator {
	switch cfg.Type {
	case "ollama", "":
		var c config.OllamaConfig
		if cfg.Ollama != nil {
			c = *cfg.Ollama
		}
		return genollama.NewClient(genollama.Config{
			BaseURL: c.BaseURL,
			Model:   c.Model,
			Timeout: time.Duration(c.TimeoutSecs) * time.Second,
		})
	case "openai":
		if cfg.OpenAI == nil {
			log.Fatalf("openai generator config missing")
		}
		gen, err := genopenai.NewClient(genopenai.Config{
			BaseURL:   cfg.OpenAI.BaseURL,
			APIKeyEnv: cfg.OpenAI.APIKeyEnv,
			Model:     cfg.OpenAI.Model,
			Timeout:   time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai generator init failed: %v", err)
		}
		return gen
	default:
		log.Fatalf("unknown generator: %s", cfg.Type)
		return nil
	}
}

// loadDocuments expands globs and reads each matched .pdf/.txt file into
// a document; other extensions are ignored.
func loadDocuments(patterns []string) ([]domain.Document, error) {
	var docs []domain.Document
	for _, p := range patterns {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			var kind domain.Kind
			switch strings.ToLower(filepath.Ext(m)) {
			case ".pdf":
				kind = domain.KindPDF
			case ".txt", ".md", ".text":
				kind = domain.KindText
			default:
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, err
			}
			docs = append(docs, domain.Document{
				ID:   uuid.NewString(),
				Name: filepath.Base(m),
				Kind: kind,
				Data: data,
			})
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .pdf or .txt documents found")
	}
	return docs, nil
}
