package ner

import (
	"context"

	"medsumm/internal/model"
)

// Recognizer extracts labeled entity spans from plain text.
// Entities are ordered by Start and offsets refer to the exact input string.
type Recognizer interface {
	Extract(ctx context.Context, text string) ([]model.Entity, error)
}
