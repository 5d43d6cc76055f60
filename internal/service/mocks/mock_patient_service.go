package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medsumm/internal/service"
)

type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) Ask(ctx context.Context, patientID, question string) (*service.AskResult, error) {
	args := m.Called(ctx, patientID, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AskResult), args.Error(1)
}

func (m *MockPatientService) Analyze(ctx context.Context, patientID string, cids []string) (*service.AnalyzeResult, error) {
	args := m.Called(ctx, patientID, cids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeResult), args.Error(1)
}

func (m *MockPatientService) PutRecord(ctx context.Context, patientID, text string) error {
	args := m.Called(ctx, patientID, text)
	return args.Error(0)
}

func (m *MockPatientService) DeleteRecord(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

func (m *MockPatientService) RecordCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPatientService) LoadSample(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}
