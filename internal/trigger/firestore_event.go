// Package trigger decodes Firestore document-created events into
// message-created deliveries.
//
// Two JSON shapes are accepted: the bare Firestore event
// ({"oldValue":..., "value":..., "updateMask":...}) and the background
// function envelope that wraps it ({"data": {...}, "context": {...}}).
package trigger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	chatdomain "messenger-notifier/internal/chat/domain"
)

var (
	// ErrMalformedEvent means the payload can never be processed; retrying is pointless.
	ErrMalformedEvent = errors.New("malformed firestore event")
	// ErrUnexpectedPath means the document is not chatrooms/{chatRoomId}/messages/{messageId}.
	ErrUnexpectedPath = errors.New("unexpected document path")
)

type UpdateMask struct {
	FieldPaths []string `json:"fieldPaths"`
}

type FirestoreEvent struct {
	OldValue   *FirestoreValue `json:"oldValue,omitempty"`
	Value      *FirestoreValue `json:"value,omitempty"`
	UpdateMask *UpdateMask     `json:"updateMask,omitempty"`
}

type FirestoreValue struct {
	CreateTime time.Time        `json:"createTime"`
	Fields     map[string]Value `json:"fields"`
	Name       string           `json:"name"`
	UpdateTime time.Time        `json:"updateTime"`
}

// Value is a typed Firestore field value. Only the kinds the notifier reads
// are mapped; other kinds decode as an empty Value.
type Value struct {
	StringValue    *string    `json:"stringValue,omitempty"`
	BooleanValue   *bool      `json:"booleanValue,omitempty"`
	IntegerValue   *string    `json:"integerValue,omitempty"`
	TimestampValue *time.Time `json:"timestampValue,omitempty"`
	NullValue      *string    `json:"nullValue,omitempty"`
}

// EventContext is the metadata block of the background function envelope.
type EventContext struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Resource  string    `json:"resource"`
	Timestamp time.Time `json:"timestamp"`
}

type envelope struct {
	FirestoreEvent
	Data    *FirestoreEvent `json:"data,omitempty"`
	Context *EventContext   `json:"context,omitempty"`
}

// DecodeFirestoreEvent parses a trigger payload. An event without a document
// value decodes to a MessageCreated with a nil Message.
func DecodeFirestoreEvent(body []byte) (*chatdomain.MessageCreated, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	event := env.FirestoreEvent
	if env.Data != nil {
		event = *env.Data
	}

	created := &chatdomain.MessageCreated{}
	var name string
	if env.Context != nil {
		created.EventID = env.Context.EventID
		name = env.Context.Resource
	}
	if event.Value != nil && event.Value.Name != "" {
		name = event.Value.Name
	}

	if name != "" {
		ref, err := ParseMessagePath(name)
		if err != nil {
			return nil, err
		}
		created.Ref = ref
	}

	if event.Value == nil || (event.Value.Name == "" && len(event.Value.Fields) == 0) {
		return created, nil
	}
	if name == "" {
		return nil, fmt.Errorf("%w: document has no name", ErrUnexpectedPath)
	}

	fields := event.Value.Fields
	created.Message = &chatdomain.Message{
		SenderID:         fields["senderId"].String(),
		ReceiverID:       fields["receiverId"].String(),
		NotificationSent: fields["notificationSent"].Bool(),
		SystemMessage:    fields["systemMessage"].Bool(),
	}
	return created, nil
}

// String returns the string value, or "" for any other kind.
func (v Value) String() string {
	if v.StringValue == nil {
		return ""
	}
	return *v.StringValue
}

// Bool returns the boolean value, or false for any other kind.
func (v Value) Bool() bool {
	return v.BooleanValue != nil && *v.BooleanValue
}

// ParseMessagePath extracts the path parameters from a full resource name
// (projects/{p}/databases/{d}/documents/...) or a database-relative path.
func ParseMessagePath(name string) (chatdomain.MessageRef, error) {
	relative := name
	if i := strings.Index(name, "/documents/"); i >= 0 {
		relative = name[i+len("/documents/"):]
	}

	parts := strings.Split(strings.Trim(relative, "/"), "/")
	if len(parts) != 4 ||
		parts[0] != chatdomain.ChatRoomsCollection ||
		parts[2] != chatdomain.MessagesCollection ||
		parts[1] == "" || parts[3] == "" {
		return chatdomain.MessageRef{}, fmt.Errorf("%w: %q", ErrUnexpectedPath, name)
	}
	return chatdomain.MessageRef{ChatRoomID: parts[1], MessageID: parts[3]}, nil
}
