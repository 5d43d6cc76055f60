package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"medsumm/internal/content"
	"medsumm/internal/extract"
	"medsumm/internal/generation"
	"medsumm/internal/logger"
	"medsumm/internal/repository"
)

var (
	ErrQuestionRequired = errors.New("question is required")
	ErrNoRecords        = errors.New("No records found for patient.")
	ErrTextRequired     = errors.New("text is required")
)

// AskResult is the answer to a patient question.
type AskResult struct {
	PatientID string
	Question  string
	Answer    string
	Outcome   generation.Outcome
}

// AnalyzeResult is the structured analysis of a patient's combined records.
type AnalyzeResult struct {
	PatientID string
	Analysis  string
	Outcome   generation.Outcome
}

// PatientService defines the use cases of the patient Q&A service.
type PatientService interface {
	// Ask answers a question against the patient's stored record text.
	// An empty patientID selects the default patient.
	Ask(ctx context.Context, patientID, question string) (*AskResult, error)

	// Analyze appends the content behind cids to the patient's record, stores
	// the combined text and runs the clinical analysis prompt over it.
	Analyze(ctx context.Context, patientID string, cids []string) (*AnalyzeResult, error)

	// PutRecord replaces the patient's record text.
	PutRecord(ctx context.Context, patientID, text string) error

	// DeleteRecord removes the patient's record.
	DeleteRecord(ctx context.Context, patientID string) error

	// RecordCount returns the number of patients with stored records.
	RecordCount(ctx context.Context) (int, error)

	// LoadSample extracts path leniently and stores the text under the
	// default patient. It reports whether any text was loaded.
	LoadSample(ctx context.Context, path string) (bool, error)
}

// PatientOptions tunes the patient service.
type PatientOptions struct {
	DefaultPatientID string
	MaxRecordChars   int
}

type patientService struct {
	store     repository.RecordStore
	fetcher   content.Fetcher
	gen       generation.Generator
	extractor extract.Extractor
	opts      PatientOptions
	log       *zap.Logger
}

// NewPatientService constructs a new PatientService.
func NewPatientService(
	store repository.RecordStore,
	fetcher content.Fetcher,
	gen generation.Generator,
	extractor extract.Extractor,
	opts PatientOptions,
	log *zap.Logger,
) PatientService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultPatientID == "" {
		opts.DefaultPatientID = "test_patient"
	}
	return &patientService{
		store:     store,
		fetcher:   fetcher,
		gen:       gen,
		extractor: extractor,
		opts:      opts,
		log:       log,
	}
}

func (s *patientService) patientID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return s.opts.DefaultPatientID
}

func (s *patientService) Ask(ctx context.Context, patientID, question string) (*AskResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrQuestionRequired
	}
	patientID = s.patientID(patientID)

	record, _, err := s.store.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	res := s.gen.Generate(ctx, generation.AskRequest(record, question, s.opts.MaxRecordChars))
	s.log.Info("question answered",
		logger.RequestIDField(ctx),
		zap.String("patient_id", patientID),
		zap.Bool("has_records", record != ""),
		zap.String("outcome", string(res.Outcome)),
	)
	return &AskResult{
		PatientID: patientID,
		Question:  question,
		Answer:    res.Text,
		Outcome:   res.Outcome,
	}, nil
}

func (s *patientService) Analyze(ctx context.Context, patientID string, cids []string) (*AnalyzeResult, error) {
	patientID = s.patientID(patientID)
	s.log.Info("analyze request", logger.RequestIDField(ctx), zap.String("patient_id", patientID), zap.Strings("cids", cids))

	fetched, resolved := s.fetchAll(ctx, cids)

	combined, err := s.store.Update(ctx, patientID, func(existing string, _ bool) (string, error) {
		if strings.TrimSpace(existing) == "" && !resolved {
			return "", ErrNoRecords
		}
		switch {
		case existing == "":
			return fetched, nil
		case fetched == "":
			return existing, nil
		default:
			return existing + "\n\n" + fetched, nil
		}
	})
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			s.log.Warn("no records available", zap.String("patient_id", patientID))
			return nil, err
		}
		return nil, fmt.Errorf("update record: %w", err)
	}

	res := s.gen.Generate(ctx, generation.AnalysisRequest(combined, s.opts.MaxRecordChars))
	s.log.Info("analysis completed", logger.RequestIDField(ctx), zap.String("patient_id", patientID), zap.String("outcome", string(res.Outcome)))
	return &AnalyzeResult{
		PatientID: patientID,
		Analysis:  res.Text,
		Outcome:   res.Outcome,
	}, nil
}

// fetchAll resolves cids in order. resolved reports whether any of them
// produced non-blank text.
func (s *patientService) fetchAll(ctx context.Context, cids []string) (combined string, resolved bool) {
	var b strings.Builder
	for _, cid := range cids {
		txt, ok := s.fetcher.Fetch(ctx, cid)
		if ok && txt != "" {
			fmt.Fprintf(&b, "\n\n--- CONTENT FROM %s ---\n\n%s", cid, txt)
			if strings.TrimSpace(txt) != "" {
				resolved = true
			}
			continue
		}
		fmt.Fprintf(&b, "\n\n--- CONTENT FROM %s UNAVAILABLE ---\n\n", cid)
	}
	return b.String(), resolved
}

func (s *patientService) PutRecord(ctx context.Context, patientID, text string) error {
	if strings.TrimSpace(patientID) == "" {
		return repository.ErrPatientIDRequired
	}
	if strings.TrimSpace(text) == "" {
		return ErrTextRequired
	}
	return s.store.Put(ctx, patientID, text)
}

func (s *patientService) DeleteRecord(ctx context.Context, patientID string) error {
	if strings.TrimSpace(patientID) == "" {
		return repository.ErrPatientIDRequired
	}
	return s.store.Delete(ctx, patientID)
}

func (s *patientService) RecordCount(ctx context.Context) (int, error) {
	return s.store.Len(ctx)
}

func (s *patientService) LoadSample(ctx context.Context, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		s.log.Info("sample record not found", zap.String("path", path))
		return false, nil
	}
	text := s.extractor.ExtractText(ctx, path)
	if strings.TrimSpace(text) == "" {
		s.log.Warn("sample record not loaded", zap.String("path", path))
		return false, nil
	}
	if err := s.store.Put(ctx, s.opts.DefaultPatientID, text); err != nil {
		return false, fmt.Errorf("store sample: %w", err)
	}
	s.log.Info("sample record loaded",
		zap.String("patient_id", s.opts.DefaultPatientID),
		zap.Int("chars", len([]rune(text))),
	)
	return true, nil
}
