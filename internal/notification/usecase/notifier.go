package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	chatdomain "messenger-notifier/internal/chat/domain"
	chatrepo "messenger-notifier/internal/chat/repository"
	"messenger-notifier/internal/notification/metrics"
	userdomain "messenger-notifier/internal/user/domain"
	userrepo "messenger-notifier/internal/user/repository"
	"messenger-notifier/pkg/fcm"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// InactivityThreshold is how long a receiver must be idle before a push is sent.
	InactivityThreshold = 5 * time.Minute

	DefaultTitle = "New message"
	DefaultBody  = "You have a new message"
	// ClickAction is the Flutter convention the mobile client routes taps by.
	ClickAction = "FLUTTER_NOTIFICATION_CLICK"
)

// ErrInvalidMessage is returned for messages that do not name both participants.
var ErrInvalidMessage = errors.New("message has no sender or receiver")

// Outcome describes how an invocation ended.
type Outcome string

const (
	OutcomeSkippedAbsent      Outcome = "skipped_absent"
	OutcomeSkippedAlreadySent Outcome = "skipped_already_sent"
	OutcomeSkippedSystem      Outcome = "skipped_system"
	OutcomeSkippedNoToken     Outcome = "skipped_no_token"
	OutcomeSuppressedActive   Outcome = "suppressed_active"
	OutcomeSent               Outcome = "sent"

	OutcomeFailedInvalid   Outcome = "failed_invalid"
	OutcomeFailedLookup    Outcome = "failed_lookup"
	OutcomeFailedDispatch  Outcome = "failed_dispatch"
	OutcomeFailedWriteBack Outcome = "failed_write_back"
)

// Sender delivers a push notification to one device.
type Sender interface {
	SendToDevice(ctx context.Context, token string, notification fcm.NotificationData) error
}

// Notifier sends a push for a newly created chat message when the receiver
// is away, then marks the message as notified.
type Notifier struct {
	users    userrepo.UserRepository
	messages chatrepo.MessageRepository
	sender   Sender
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*Notifier)

// WithClock overrides time.Now for the away check.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Notifier) { n.metrics = m }
}

func NewNotifier(users userrepo.UserRepository, messages chatrepo.MessageRepository, sender Sender, logger *zap.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		users:    users,
		messages: messages,
		sender:   sender,
		logger:   logger.Named("notifier"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Handle processes one message-created delivery. Skips return nil; lookup,
// dispatch and write-back failures are returned so the caller can retry.
func (n *Notifier) Handle(ctx context.Context, event *chatdomain.MessageCreated) error {
	start := time.Now()
	log := n.logger
	if event != nil {
		log = log.With(
			zap.String("event_id", event.EventID),
			zap.String("chat_room_id", event.Ref.ChatRoomID),
			zap.String("message_id", event.Ref.MessageID),
		)
	}

	outcome, err := n.handle(ctx, event)
	n.metrics.Observe(string(outcome), time.Since(start))

	switch {
	case err != nil:
		log.Error("Message notification failed", zap.String("outcome", string(outcome)), zap.Error(err))
	case outcome == OutcomeSent:
		log.Info("Message notification sent")
	default:
		log.Debug("Message notification skipped", zap.String("outcome", string(outcome)))
	}
	return err
}

func (n *Notifier) handle(ctx context.Context, event *chatdomain.MessageCreated) (Outcome, error) {
	if event == nil || event.Message == nil {
		return OutcomeSkippedAbsent, nil
	}
	msg := event.Message
	if msg.NotificationSent {
		return OutcomeSkippedAlreadySent, nil
	}
	if msg.SystemMessage {
		return OutcomeSkippedSystem, nil
	}
	if msg.SenderID == "" || msg.ReceiverID == "" {
		return OutcomeFailedInvalid, fmt.Errorf("%w: %s", ErrInvalidMessage, event.Ref.Path())
	}

	sender, receiver, err := n.fetchParticipants(ctx, msg)
	if err != nil {
		return OutcomeFailedLookup, err
	}

	token, ok := receiver.Token()
	if !ok {
		return OutcomeSkippedNoToken, nil
	}
	if !isAway(receiver, n.now()) {
		// notificationSent stays unset; this message is never revisited
		return OutcomeSuppressedActive, nil
	}

	notification := fcm.NotificationData{
		Title: sender.DisplayName(DefaultTitle),
		Body:  DefaultBody,
		Data: map[string]string{
			"chatRoomId": event.Ref.ChatRoomID,
			"senderId":   msg.SenderID,
		},
		ClickAction: ClickAction,
	}
	if err := n.sender.SendToDevice(ctx, token, notification); err != nil {
		return OutcomeFailedDispatch, fmt.Errorf("send notification: %w", err)
	}

	// Written only after a successful dispatch. A redelivery between the two
	// steps sends a second push.
	if err := n.messages.MarkNotificationSent(ctx, event.Ref); err != nil {
		return OutcomeFailedWriteBack, fmt.Errorf("mark notification sent: %w", err)
	}
	return OutcomeSent, nil
}

// fetchParticipants loads sender and receiver concurrently. A missing
// document yields a nil user.
func (n *Notifier) fetchParticipants(ctx context.Context, msg *chatdomain.Message) (sender, receiver *userdomain.User, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := n.users.FindByID(gctx, msg.SenderID)
		if err != nil {
			return fmt.Errorf("fetch sender: %w", err)
		}
		sender = u
		return nil
	})
	g.Go(func() error {
		u, err := n.users.FindByID(gctx, msg.ReceiverID)
		if err != nil {
			return fmt.Errorf("fetch receiver: %w", err)
		}
		receiver = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sender, receiver, nil
}

// isAway reports whether the user was last active strictly before now minus
// InactivityThreshold. A user who never reported activity counts as away.
func isAway(u *userdomain.User, now time.Time) bool {
	return u.LastActiveOr(time.Unix(0, 0)).Before(now.Add(-InactivityThreshold))
}
