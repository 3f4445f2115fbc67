package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"INFO", zapcore.InfoLevel, true},
		{" warn ", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"", zapcore.InfoLevel, true},
		{"loud", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equalf(t, tt.want, got, "input %q", tt.in)
		assert.Equalf(t, tt.wantOK, ok, "input %q", tt.in)
	}
}

func TestNew(t *testing.T) {
	log := New(zapcore.InfoLevel)
	require.NotNil(t, log)
	log.Infow("logger smoke test", "ok", true)
}
