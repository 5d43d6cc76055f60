package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, cid string) (string, bool) {
	args := m.Called(ctx, cid)
	return args.String(0), args.Bool(1)
}
