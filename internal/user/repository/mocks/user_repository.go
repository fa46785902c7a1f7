package mocks

import (
	"context"

	userdomain "messenger-notifier/internal/user/domain"

	"github.com/stretchr/testify/mock"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*userdomain.User)
	return user, args.Error(1)
}
