package chunker

import (
	"fmt"
	"strings"
	"unicode"

	"docchat/internal/domain"
)

// WindowChunker splits text into fixed-size character windows with overlap.
// In boundary-aware mode the window end is pulled back to the nearest
// preceding newline so table rows and paragraphs are not split mid-line.
type WindowChunker struct {
	size          int
	overlap       int
	boundaryAware bool
}

// NewWindowChunker validates the chunking parameters. Overlap must be
// strictly smaller than the chunk size or the chunker would never advance.
func NewWindowChunker(size, overlap int, boundaryAware bool) (*WindowChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrConfig, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must be non-negative, got %d", domain.ErrConfig, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", domain.ErrConfig, overlap, size)
	}
	return &WindowChunker{size: size, overlap: overlap, boundaryAware: boundaryAware}, nil
}

func (c *WindowChunker) Chunk(text string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	id := 0
	start := 0
	for start < len(text) {
		end := start + c.size
		if c.boundaryAware && end < len(text) {
			window := c.size
			if window > 100 {
				window = 100
			}
			lo := end - window
			if lo < start {
				lo = start
			}
			if pos := strings.LastIndexByte(text[lo:end], '\n'); pos != -1 {
				end = lo + pos + 1
			}
		}
		sliceEnd := end
		if sliceEnd > len(text) {
			sliceEnd = len(text)
		}
		raw := text[start:sliceEnd]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
			chunks = append(chunks, domain.Chunk{
				ID:    id,
				Text:  trimmed,
				Start: start + lead,
				End:   start + lead + len(trimmed),
			})
			id++
		}
		next := end - c.overlap
		if next <= start {
			// Unreachable under validated config; guards against an
			// infinite loop if the invariant is ever broken.
			next = start + 1
		}
		start = next
	}
	return chunks, nil
}
