package repository

import (
	"context"
	"fmt"

	userdomain "messenger-notifier/internal/user/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

// UserRepository defines read access to user documents
type UserRepository interface {
	// FindByID returns nil, nil when the user document does not exist
	FindByID(ctx context.Context, id string) (*userdomain.User, error)
}

// userRepository implements UserRepository on Firestore
type userRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(client *firestore.Client) UserRepository {
	return &userRepository{
		client: client,
	}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	var user userdomain.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}
