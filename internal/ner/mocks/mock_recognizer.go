package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medsumm/internal/model"
)

type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Extract(ctx context.Context, text string) ([]model.Entity, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Entity), args.Error(1)
}
