package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ClickActionKey is the data key mobile clients read the click action from.
const ClickActionKey = "click_action"

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
	logger          *zap.Logger
}

// NewClient creates a new FCM client from an initialized Firebase app
func NewClient(ctx context.Context, app *firebase.App, logger *zap.Logger) (*Client, error) {
	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	logger.Info("FCM client initialized")
	return &Client{
		messagingClient: messagingClient,
		logger:          logger.Named("fcm"),
	}, nil
}

// NotificationData contains the data to send in a push notification
type NotificationData struct {
	Title string
	Body  string
	Data  map[string]string // Custom data payload
	// ClickAction is copied into Data under ClickActionKey
	ClickAction string
}

// SendToDevice sends a push notification to a specific device token
func (c *Client) SendToDevice(ctx context.Context, token string, notification NotificationData) error {
	response, err := c.messagingClient.Send(ctx, buildMessage(token, notification))
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	c.logger.Debug("Message sent", zap.String("response", response), zap.String("token", tokenSnippet(token)))
	return nil
}

func buildMessage(token string, notification NotificationData) *messaging.Message {
	data := make(map[string]string, len(notification.Data)+1)
	for k, v := range notification.Data {
		data[k] = v
	}
	if notification.ClickAction != "" {
		data[ClickActionKey] = notification.ClickAction
	}

	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: data,
	}
}

func tokenSnippet(token string) string {
	if len(token) > 20 {
		return token[:20] + "..."
	}
	return token
}
