package mocks

import (
	"context"

	"messenger-notifier/pkg/fcm"

	"github.com/stretchr/testify/mock"
)

// Mock Sender
type Sender struct {
	mock.Mock
}

func (m *Sender) SendToDevice(ctx context.Context, token string, notification fcm.NotificationData) error {
	args := m.Called(ctx, token, notification)
	return args.Error(0)
}
