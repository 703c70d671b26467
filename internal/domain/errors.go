package domain

import (
	"errors"
	"fmt"
)

// ErrConfig reports invalid chunking parameters. It is fatal at ingestion
// start and is never silently clamped.
var ErrConfig = errors.New("invalid chunking config")

// DecodeError reports a text document whose bytes are not valid UTF-8.
// Ingestion of that document aborts; other documents in the batch proceed.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
