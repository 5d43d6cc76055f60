package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	contentMocks "medsumm/internal/content/mocks"
	extractMocks "medsumm/internal/extract/mocks"
	"medsumm/internal/generation"
	genMocks "medsumm/internal/generation/mocks"
	"medsumm/internal/repository"
	"medsumm/internal/repository/memory"
	repoMocks "medsumm/internal/repository/mocks"
)

type patientDeps struct {
	store     *memory.RecordMemory
	fetcher   *contentMocks.MockFetcher
	gen       *genMocks.MockGenerator
	extractor *extractMocks.MockExtractor
}

func newPatientService(maxChars int) (PatientService, patientDeps) {
	d := patientDeps{
		store:     memory.NewRecordMemory(0, 0),
		fetcher:   new(contentMocks.MockFetcher),
		gen:       new(genMocks.MockGenerator),
		extractor: new(extractMocks.MockExtractor),
	}
	svc := NewPatientService(d.store, d.fetcher, d.gen, d.extractor, PatientOptions{MaxRecordChars: maxChars}, nil)
	return svc, d
}

func userContains(parts ...string) interface{} {
	return mock.MatchedBy(func(req generation.Request) bool {
		for _, p := range parts {
			if !strings.Contains(req.User, p) {
				return false
			}
		}
		return true
	})
}

func TestPatientService_Ask(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		patientID  string
		question   string
		seed       map[string]string
		maxChars   int
		userParts  []string
		wantID     string
		wantErr    error
		wantAnswer string
	}{
		{
			name:       "unknown patient uses placeholder",
			patientID:  "p1",
			question:   "What is my blood pressure trend?",
			userParts:  []string{"PATIENT RECORDS:\nNo health records available for this patient.", "What is my blood pressure trend?"},
			wantID:     "p1",
			wantAnswer: "No data on file.",
		},
		{
			name:       "default patient",
			question:   "Any anomalies?",
			seed:       map[string]string{"test_patient": "Hemoglobin 10.1 g/dL"},
			userParts:  []string{"Hemoglobin 10.1 g/dL"},
			wantID:     "test_patient",
			wantAnswer: "Low hemoglobin.",
		},
		{
			name:       "record truncated in prompt only",
			patientID:  "p2",
			question:   "q",
			seed:       map[string]string{"p2": strings.Repeat("a", 50)},
			maxChars:   10,
			userParts:  []string{strings.Repeat("a", 10) + "\n\n[Record truncated]"},
			wantID:     "p2",
			wantAnswer: "ok",
		},
		{
			name:     "missing question",
			question: "   ",
			wantErr:  ErrQuestionRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newPatientService(tt.maxChars)
			for k, v := range tt.seed {
				require.NoError(t, d.store.Put(ctx, k, v))
			}
			if tt.wantErr == nil {
				d.gen.On("Generate", ctx, userContains(tt.userParts...)).
					Return(generation.Result{Outcome: generation.OutcomeOK, Text: tt.wantAnswer}).Once()
			}

			res, err := svc.Ask(ctx, tt.patientID, tt.question)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, res.PatientID)
				assert.Equal(t, tt.question, res.Question)
				assert.Equal(t, tt.wantAnswer, res.Answer)
				assert.Equal(t, generation.OutcomeOK, res.Outcome)
			}
			d.gen.AssertExpectations(t)

			for k, v := range tt.seed {
				got, _, _ := d.store.Get(ctx, k)
				assert.Equal(t, v, got, "stored text must stay untouched")
			}
		})
	}
}

func TestPatientService_Ask_CredentialMissing(t *testing.T) {
	ctx := context.Background()
	svc, d := newPatientService(0)
	d.gen.On("Generate", ctx, mock.Anything).Return(generation.Result{
		Outcome: generation.OutcomeCredentialMissing,
		Text:    "Error: Missing GEMINI_API_KEY in server environment.",
	})

	res, err := svc.Ask(ctx, "p", "hi")
	require.NoError(t, err)
	assert.Equal(t, generation.OutcomeCredentialMissing, res.Outcome)
	assert.Equal(t, "Error: Missing GEMINI_API_KEY in server environment.", res.Answer)
}

func TestPatientService_Ask_StoreError(t *testing.T) {
	ctx := context.Background()
	store := new(repoMocks.MockRecordStore)
	store.On("Get", ctx, "p").Return("", false, errors.New("redis down"))
	svc := NewPatientService(store, nil, nil, nil, PatientOptions{}, nil)

	_, err := svc.Ask(ctx, "p", "hi")
	assert.ErrorContains(t, err, "get record: redis down")
}

func TestPatientService_Analyze(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		existing   string
		cids       []string
		fetch      map[string]string // cid -> text; missing means unavailable
		wantErr    error
		wantStored string
	}{
		{
			name:       "resolved cid appended to existing text",
			existing:   "Sample report",
			cids:       []string{"cid-1"},
			fetch:      map[string]string{"cid-1": "Glucose 140"},
			wantStored: "Sample report\n\n\n\n--- CONTENT FROM cid-1 ---\n\nGlucose 140",
		},
		{
			name:       "bad cid with existing text still succeeds",
			existing:   "Sample report",
			cids:       []string{"bad-cid"},
			wantStored: "Sample report\n\n\n\n--- CONTENT FROM bad-cid UNAVAILABLE ---\n\n",
		},
		{
			name:       "bad cid with another resolved",
			cids:       []string{"bad-cid", "cid-2"},
			fetch:      map[string]string{"cid-2": "Pulse 72"},
			wantStored: "\n\n--- CONTENT FROM bad-cid UNAVAILABLE ---\n\n\n\n--- CONTENT FROM cid-2 ---\n\nPulse 72",
		},
		{
			name:       "existing text only",
			existing:   "Sample report",
			wantStored: "Sample report",
		},
		{
			name:    "only bad cid and nothing stored",
			cids:    []string{"bad-cid"},
			wantErr: ErrNoRecords,
		},
		{
			name:    "nothing at all",
			wantErr: ErrNoRecords,
		},
		{
			name:     "whitespace record",
			existing: "  \n ",
			wantErr:  ErrNoRecords,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newPatientService(0)
			if tt.existing != "" {
				require.NoError(t, d.store.Put(ctx, "p1", tt.existing))
			}
			for _, cid := range tt.cids {
				txt, ok := tt.fetch[cid]
				d.fetcher.On("Fetch", ctx, cid).Return(txt, ok).Once()
			}
			if tt.wantErr == nil {
				d.gen.On("Generate", ctx, mock.MatchedBy(func(req generation.Request) bool {
					return req.User == "PATIENT RECORDS:\n"+tt.wantStored+"\n\nPlease perform the analysis as requested."
				})).Return(generation.Result{Outcome: generation.OutcomeOK, Text: "1. Summary"}).Once()
			}

			res, err := svc.Analyze(ctx, "p1", tt.cids)

			got, _, _ := d.store.Get(ctx, "p1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.existing, got, "failed analysis must not write")
			} else {
				require.NoError(t, err)
				assert.Equal(t, "p1", res.PatientID)
				assert.Equal(t, "1. Summary", res.Analysis)
				assert.Equal(t, tt.wantStored, got)
			}
			d.fetcher.AssertExpectations(t)
			d.gen.AssertExpectations(t)
		})
	}
}

func TestPatientService_Analyze_StoreError(t *testing.T) {
	ctx := context.Background()
	store := new(repoMocks.MockRecordStore)
	store.On("Update", ctx, "test_patient", mock.Anything).Return("", false, errors.New("conflict"))
	svc := NewPatientService(store, new(contentMocks.MockFetcher), nil, nil, PatientOptions{}, nil)

	_, err := svc.Analyze(ctx, "", nil)
	assert.ErrorContains(t, err, "update record: conflict")
}

func TestPatientService_Records(t *testing.T) {
	ctx := context.Background()
	svc, d := newPatientService(0)

	assert.ErrorIs(t, svc.PutRecord(ctx, "", "x"), repository.ErrPatientIDRequired)
	assert.ErrorIs(t, svc.PutRecord(ctx, "p", " "), ErrTextRequired)
	assert.ErrorIs(t, svc.DeleteRecord(ctx, ""), repository.ErrPatientIDRequired)

	require.NoError(t, svc.PutRecord(ctx, "p", "BP 120/80"))
	n, err := svc.RecordCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, svc.DeleteRecord(ctx, "p"))
	_, ok, _ := d.store.Get(ctx, "p")
	assert.False(t, ok)
}

func writeSample(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("sample"), 0o600))
	return p
}

func TestPatientService_LoadSample(t *testing.T) {
	ctx := context.Background()

	t.Run("loads text", func(t *testing.T) {
		svc, d := newPatientService(0)
		path := writeSample(t, "sample.pdf")
		d.extractor.On("ExtractText", ctx, path).Return("Hemoglobin 13.5")

		loaded, err := svc.LoadSample(ctx, path)
		require.NoError(t, err)
		assert.True(t, loaded)
		got, _, _ := d.store.Get(ctx, "test_patient")
		assert.Equal(t, "Hemoglobin 13.5", got)
	})

	t.Run("unreadable sample is skipped", func(t *testing.T) {
		svc, d := newPatientService(0)
		path := writeSample(t, "broken.pdf")
		d.extractor.On("ExtractText", ctx, path).Return("")

		loaded, err := svc.LoadSample(ctx, path)
		require.NoError(t, err)
		assert.False(t, loaded)
		n, _ := d.store.Len(ctx)
		assert.Zero(t, n)
	})

	t.Run("missing file is not extracted", func(t *testing.T) {
		svc, d := newPatientService(0)
		loaded, err := svc.LoadSample(ctx, filepath.Join(t.TempDir(), "sample-data.txt.pdf"))
		require.NoError(t, err)
		assert.False(t, loaded)
		d.extractor.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
	})

	t.Run("no path", func(t *testing.T) {
		svc, d := newPatientService(0)
		loaded, err := svc.LoadSample(ctx, "")
		require.NoError(t, err)
		assert.False(t, loaded)
		d.extractor.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
	})
}
