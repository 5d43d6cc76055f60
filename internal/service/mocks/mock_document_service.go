package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"medsumm/internal/model"
	"medsumm/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Ingest(ctx context.Context, r io.Reader, fileName string) (*model.DocumentMetadata, error) {
	args := m.Called(ctx, r, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentMetadata), args.Error(1)
}

func (m *MockDocumentService) Bundle(ctx context.Context, patientID, text string) (*service.BundleResult, error) {
	args := m.Called(ctx, patientID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BundleResult), args.Error(1)
}
