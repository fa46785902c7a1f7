package mocks

import (
	"context"

	chatdomain "messenger-notifier/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// Mock MessageRepository
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) MarkNotificationSent(ctx context.Context, ref chatdomain.MessageRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
