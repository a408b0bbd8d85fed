package mocks

import (
	"context"

	"larp-server/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Mock TxManager. When no error is programmed it runs the callback with a
// nil DBTX, so services under test exercise their transactional closures.
type TxManager struct {
	mock.Mock
}

func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.DBTX) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, nil)
}
