package mocks

import (
	"context"

	"larp-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// Mock NotificationPublisher
type NotificationPublisher struct {
	mock.Mock
}

func (m *NotificationPublisher) PublishBackgroundCompleted(ctx context.Context, event messaging.BackgroundCompletedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *NotificationPublisher) PublishSheetStatusChanged(ctx context.Context, event messaging.SheetStatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
