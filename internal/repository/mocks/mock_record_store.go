package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medsumm/internal/repository"
)

type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Get(ctx context.Context, patientID string) (string, bool, error) {
	args := m.Called(ctx, patientID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockRecordStore) Put(ctx context.Context, patientID, text string) error {
	args := m.Called(ctx, patientID, text)
	return args.Error(0)
}

func (m *MockRecordStore) Delete(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

// Update passes the configured current value (args 0 and 1) to fn unless
// a non-nil error is configured (arg 2).
func (m *MockRecordStore) Update(ctx context.Context, patientID string, fn repository.UpdateFunc) (string, error) {
	args := m.Called(ctx, patientID, fn)
	if err := args.Error(2); err != nil {
		return "", err
	}
	return fn(args.String(0), args.Bool(1))
}

func (m *MockRecordStore) Len(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
