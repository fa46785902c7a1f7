package fcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	data := map[string]string{"chatRoomId": "room-1", "senderId": "A"}

	msg := buildMessage("tok1", NotificationData{
		Title:       "Alice",
		Body:        "You have a new message",
		Data:        data,
		ClickAction: "FLUTTER_NOTIFICATION_CLICK",
	})

	assert.Equal(t, "tok1", msg.Token)
	require.NotNil(t, msg.Notification)
	assert.Equal(t, "Alice", msg.Notification.Title)
	assert.Equal(t, "You have a new message", msg.Notification.Body)
	assert.Equal(t, map[string]string{
		"chatRoomId":   "room-1",
		"senderId":     "A",
		"click_action": "FLUTTER_NOTIFICATION_CLICK",
	}, msg.Data)
	assert.Nil(t, msg.Android)
	assert.Nil(t, msg.Webpush)
	assert.Len(t, data, 2, "caller's map must not be modified")
}

func TestBuildMessage_NoClickAction(t *testing.T) {
	msg := buildMessage("tok1", NotificationData{Title: "t", Body: "b"})

	assert.Empty(t, msg.Data)
}

func TestTokenSnippet(t *testing.T) {
	assert.Equal(t, "short", tokenSnippet("short"))
	assert.Equal(t, "abcdefghijklmnopqrst...", tokenSnippet("abcdefghijklmnopqrstuvwxyz"))
}
