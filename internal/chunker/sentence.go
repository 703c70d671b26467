package chunker

import (
	"regexp"
	"strings"

	"docchat/internal/domain"
)

// SentenceChunker groups whole sentences into chunks with sentence-level
// overlap. Suited to prose corpora where window boundaries would split
// sentences; offsets cover the span from the first to the last sentence
// of the chunk.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	splitter          *regexp.Regexp
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		splitter:          regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

func (c *SentenceChunker) Chunk(text string) ([]domain.Chunk, error) {
	spans := c.splitter.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, nil
		}
		return []domain.Chunk{{ID: 0, Text: trimmed, Start: 0, End: len(text)}}, nil
	}
	var chunks []domain.Chunk
	i := 0
	id := 0
	for i < len(spans) {
		end := i + c.sentencesPerChunk
		if end > len(spans) {
			end = len(spans)
		}
		parts := make([]string, 0, end-i)
		for _, sp := range spans[i:end] {
			parts = append(parts, strings.TrimSpace(text[sp[0]:sp[1]]))
		}
		chunks = append(chunks, domain.Chunk{
			ID:    id,
			Text:  strings.Join(parts, " "),
			Start: spans[i][0],
			End:   spans[end-1][1],
		})
		id++
		if end == len(spans) {
			break
		}
		i = end - c.overlapSentences
	}
	return chunks, nil
}
