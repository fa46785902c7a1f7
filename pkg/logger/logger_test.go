package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel zap.AtomicLevel
	}{
		{name: "debug console", cfg: Config{Level: "debug", Encoding: "console"}, wantLevel: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "empty level defaults to info", cfg: Config{}, wantLevel: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{name: "invalid level falls back to info", cfg: Config{Level: "loud", Encoding: "xml"}, wantLevel: zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.True(t, l.Core().Enabled(tt.wantLevel.Level()))
			assert.False(t, l.Core().Enabled(tt.wantLevel.Level()-1))
		})
	}
}

func TestNew_WritesToConfiguredOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "notifier.log")

	l, err := New(Config{Level: "info", Outputs: []string{out}})
	require.NoError(t, err)
	l.Info("Message notification sent", zap.String("chat_room_id", "room-1"))
	_ = l.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Message notification sent"`)
	assert.Contains(t, string(data), `"chat_room_id":"room-1"`)
	assert.Contains(t, string(data), `"level":"INFO"`)
	assert.Contains(t, string(data), `"timestamp":`)
}
