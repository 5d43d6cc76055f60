package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medsumm/internal/generation"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) generation.Result {
	args := m.Called(ctx, req)
	return args.Get(0).(generation.Result)
}
