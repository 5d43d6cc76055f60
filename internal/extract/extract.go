package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrPathRequired is returned when no file reference was given.
var ErrPathRequired = errors.New("path is required")

// Extractor turns a file reference into plain text regardless of its format.
type Extractor interface {
	// Extract returns the text or the underlying failure. Used where a corrupt
	// document must fail loudly.
	Extract(ctx context.Context, path string) (string, error)
	// ExtractText never fails: errors are logged and an empty string is returned.
	ExtractText(ctx context.Context, path string) string
}

// PageReader reads the text of each page of a paged document.
type PageReader interface {
	Pages(ctx context.Context, path string) ([]string, error)
}

// Predictor recognizes text in an image.
type Predictor interface {
	Predict(ctx context.Context, path string) (string, error)
}

type dispatcher struct {
	pages PageReader
	ocr   Predictor
	log   *zap.Logger
}

// New constructs an Extractor dispatching on file extension.
func New(pages PageReader, ocr Predictor, log *zap.Logger) Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &dispatcher{pages: pages, ocr: ocr, log: log}
}

func (d *dispatcher) Extract(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", ErrPathRequired
	}

	switch Kind(path) {
	case KindPDF:
		pages, err := d.pages.Pages(ctx, path)
		if err != nil {
			return "", fmt.Errorf("read pdf: %w", err)
		}
		parts := make([]string, 0, len(pages))
		for _, p := range pages {
			if p == "" {
				continue
			}
			parts = append(parts, p)
		}
		return strings.Join(parts, "\n\n"), nil
	case KindImage:
		text, err := d.ocr.Predict(ctx, path)
		if err != nil {
			return "", fmt.Errorf("ocr: %w", err)
		}
		return text, nil
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(b), nil
	}
}

func (d *dispatcher) ExtractText(ctx context.Context, path string) string {
	text, err := d.Extract(ctx, path)
	if err != nil {
		d.log.Error("text extraction failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return text
}

// Document kinds understood by the dispatcher.
const (
	KindPDF   = "pdf"
	KindImage = "image"
	KindText  = "text"
)

// Kind classifies a path by its case-insensitive extension.
func Kind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPDF
	case ".png", ".jpg", ".jpeg":
		return KindImage
	default:
		return KindText
	}
}
