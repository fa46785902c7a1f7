package repository_test

import (
	"context"
	"os"
	"testing"

	chatdomain "messenger-notifier/internal/chat/domain"
	"messenger-notifier/internal/chat/repository"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// MessageRepositorySuite runs against the Firestore emulator.
type MessageRepositorySuite struct {
	suite.Suite
	ctx    context.Context
	client *firestore.Client
	repo   repository.MessageRepository
}

func TestMessageRepositorySuite(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set, skipping Firestore integration tests")
	}
	suite.Run(t, new(MessageRepositorySuite))
}

func (s *MessageRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	client, err := firestore.NewClient(s.ctx, "messenger-notifier-test")
	s.Require().NoError(err)
	s.client = client
	s.repo = repository.NewMessageRepository(client)
}

func (s *MessageRepositorySuite) TearDownSuite() {
	s.client.Close()
}

func (s *MessageRepositorySuite) TestMarkNotificationSent_KeepsOtherFields() {
	ref := chatdomain.MessageRef{ChatRoomID: uuid.NewString(), MessageID: uuid.NewString()}
	doc := s.client.Doc(ref.Path())
	_, err := doc.Set(s.ctx, map[string]interface{}{
		"senderId":   "A",
		"receiverId": "B",
		"text":       "hi",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.MarkNotificationSent(s.ctx, ref))

	snap, err := doc.Get(s.ctx)
	s.Require().NoError(err)
	var msg chatdomain.Message
	s.Require().NoError(snap.DataTo(&msg))
	s.True(msg.NotificationSent)
	s.Equal("A", msg.SenderID)
	s.Equal("hi", snap.Data()["text"])
}

func (s *MessageRepositorySuite) TestMarkNotificationSent_MissingDocument() {
	ref := chatdomain.MessageRef{ChatRoomID: uuid.NewString(), MessageID: uuid.NewString()}

	err := s.repo.MarkNotificationSent(s.ctx, ref)

	s.Error(err)
}
