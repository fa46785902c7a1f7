package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageRef_Path(t *testing.T) {
	ref := MessageRef{ChatRoomID: "room-1", MessageID: "msg-9"}

	assert.Equal(t, "chatrooms/room-1/messages/msg-9", ref.Path())
}
