package repository

import (
	"context"
	"fmt"

	chatdomain "messenger-notifier/internal/chat/domain"

	"cloud.google.com/go/firestore"
)

// MessageRepository defines the writes the notifier performs on message documents
type MessageRepository interface {
	// MarkNotificationSent sets notificationSent = true without touching other fields
	MarkNotificationSent(ctx context.Context, ref chatdomain.MessageRef) error
}

type messageRepository struct {
	client *firestore.Client
}

// NewMessageRepository creates a new instance of messageRepository
func NewMessageRepository(client *firestore.Client) MessageRepository {
	return &messageRepository{
		client: client,
	}
}

func (r *messageRepository) MarkNotificationSent(ctx context.Context, ref chatdomain.MessageRef) error {
	doc := r.client.Collection(chatdomain.ChatRoomsCollection).Doc(ref.ChatRoomID).
		Collection(chatdomain.MessagesCollection).Doc(ref.MessageID)

	_, err := doc.Update(ctx, []firestore.Update{
		{Path: chatdomain.FieldNotificationSent, Value: true},
	})
	if err != nil {
		return fmt.Errorf("update %s: %w", ref.Path(), err)
	}
	return nil
}
