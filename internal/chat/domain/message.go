package domain

import "path"

const (
	ChatRoomsCollection   = "chatrooms"
	MessagesCollection    = "messages"
	FieldNotificationSent = "notificationSent"
)

// Message is a document under chatrooms/{chatRoomId}/messages/{messageId}.
// Only the fields the notifier reads are mapped.
type Message struct {
	SenderID         string `firestore:"senderId" json:"senderId"`
	ReceiverID       string `firestore:"receiverId" json:"receiverId"`
	NotificationSent bool   `firestore:"notificationSent" json:"notificationSent"`
	SystemMessage    bool   `firestore:"systemMessage" json:"systemMessage"`
}

// MessageRef identifies a message document by its path parameters.
type MessageRef struct {
	ChatRoomID string
	MessageID  string
}

// Path returns the document path relative to the database root.
func (r MessageRef) Path() string {
	return path.Join(ChatRoomsCollection, r.ChatRoomID, MessagesCollection, r.MessageID)
}

// MessageCreated is one delivery of the message-created trigger. Message is
// nil when the delivery carried no document.
type MessageCreated struct {
	EventID string
	Ref     MessageRef
	Message *Message
}
