package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medsumm/internal/extract"
	"medsumm/internal/fhir"
	"medsumm/internal/generation"
	"medsumm/internal/logger"
	"medsumm/internal/model"
	"medsumm/internal/ner"
	"medsumm/internal/repository"
)

var (
	ErrReaderNil        = errors.New("reader is nil")
	ErrFileNameRequired = errors.New("file name is required")
	ErrExtraction       = errors.New("text extraction failed")
	ErrEmptyDocument    = errors.New("no extractable text in document")
)

// BundleResult is a clinical bundle together with its validation report.
type BundleResult struct {
	Bundle     *fhir.Bundle
	Validation *fhir.ValidationResult
}

// DocumentService defines the use cases of the document-ingestion service.
type DocumentService interface {
	// Ingest runs the summary pipeline over an uploaded document:
	// extraction, entity recognition, prompt construction, generation and
	// metadata assembly. The file extension of fileName selects the extractor.
	Ingest(ctx context.Context, r io.Reader, fileName string) (*model.DocumentMetadata, error)

	// Bundle recognizes entities in text and maps them into a validated
	// clinical bundle for patientID.
	Bundle(ctx context.Context, patientID, text string) (*BundleResult, error)
}

type documentService struct {
	extractor  extract.Extractor
	recognizer ner.Recognizer
	gen        generation.Generator
	validator  *fhir.Validator
	log        *zap.Logger
	now        func() time.Time
	tempDir    string
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(extractor extract.Extractor, recognizer ner.Recognizer, gen generation.Generator, log *zap.Logger) DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &documentService{
		extractor:  extractor,
		recognizer: recognizer,
		gen:        gen,
		validator:  fhir.NewValidator(),
		log:        log,
		now:        time.Now,
	}
}

func (s *documentService) Ingest(ctx context.Context, r io.Reader, fileName string) (*model.DocumentMetadata, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, ErrFileNameRequired
	}

	path, cleanup, err := s.spool(r, filepath.Ext(fileName))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		s.log.Warn("extraction failed", logger.RequestIDField(ctx), zap.String("file_name", fileName), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	entities := s.entities(ctx, text)
	res := s.gen.Generate(ctx, generation.SummaryRequest(text, entities))

	sum := sha256.Sum256([]byte(text))
	meta := &model.DocumentMetadata{
		DocumentID:       uuid.NewString(),
		FileName:         fileName,
		UploadTimestamp:  s.now().UTC(),
		OriginalFileHash: hex.EncodeToString(sum[:]),
		MetadataSummary:  res.Text,
		Outcome:          string(res.Outcome),
		EntityCount:      len(entities),
	}
	if res.OK() {
		if obj, ok := generation.ParseJSONObject(res.Text); ok {
			meta.StructuredSummary = obj
		}
	}

	s.log.Info("document ingested",
		logger.RequestIDField(ctx),
		zap.String("document_id", meta.DocumentID),
		zap.String("file_name", fileName),
		zap.Int("entities", len(entities)),
		zap.String("outcome", meta.Outcome),
	)
	return meta, nil
}

func (s *documentService) Bundle(ctx context.Context, patientID, text string) (*BundleResult, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, repository.ErrPatientIDRequired
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	bundle := fhir.NewBundle(patientID, s.entities(ctx, text))
	return &BundleResult{
		Bundle:     bundle,
		Validation: s.validator.Validate(bundle),
	}, nil
}

// entities degrades recognizer failures to an empty entity list.
func (s *documentService) entities(ctx context.Context, text string) []model.Entity {
	entities, err := s.recognizer.Extract(ctx, text)
	if err != nil {
		s.log.Warn("entity extraction failed, continuing without entities", zap.Error(err))
		return []model.Entity{}
	}
	if entities == nil {
		return []model.Entity{}
	}
	return entities
}

// spool copies r into a temporary file carrying ext so extraction can
// dispatch on it. The returned cleanup removes the file.
func (s *documentService) spool(r io.Reader, ext string) (string, func(), error) {
	f, err := os.CreateTemp(s.tempDir, "upload-*"+strings.ToLower(ext))
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("removing temp file failed", zap.String("path", f.Name()), zap.Error(err))
		}
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), cleanup, nil
}
