package memory

import (
	"errors"
	"math"
	"sort"
	"sync"

	"docchat/internal/domain"
)

// Store is an in-memory vector store using brute-force cosine similarity.
// Entries are keyed by chunk id; upserting an existing id overwrites it.
// Searching an empty store returns no results and no error: "no documents
// loaded" is a normal state, not a failure.
type Store struct {
	mu        sync.RWMutex
	dimension int
	byID      map[int]int // chunk id -> slice index
	chunks    []domain.Chunk
	vectors   [][]float64
}

func NewStore() *Store { return &Store{byID: make(map[int]int)} }

// Init resets the store to an empty collection of the given dimension.
// Calling Init again replaces the prior collection wholesale.
func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.byID = make(map[int]int)
	s.chunks = nil
	s.vectors = nil
	return nil
}

func (s *Store) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for i, ch := range chunks {
		if idx, ok := s.byID[ch.ID]; ok {
			s.chunks[idx] = ch
			s.vectors[idx] = vectors[i]
			continue
		}
		s.byID[ch.ID] = len(s.chunks)
		s.chunks = append(s.chunks, ch)
		s.vectors = append(s.vectors, vectors[i])
	}
	return nil
}

// Search returns up to topK entries ranked by descending cosine
// similarity. Ties are broken by ascending chunk id so repeated queries
// with the same vector return a stable order.
func (s *Store) Search(vector []float64, topK int) ([]domain.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	if len(s.vectors) == 0 {
		return nil, nil
	}
	scored := make([]domain.ScoredChunk, len(s.vectors))
	for i := range s.vectors {
		scored[i] = domain.ScoredChunk{Chunk: s.chunks[i], Score: cosine(s.vectors[i], vector)}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.ID < scored[j].Chunk.ID
	})
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[int]int)
	s.chunks = nil
	s.vectors = nil
	return nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	dot, na, nb := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
