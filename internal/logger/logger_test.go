package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		debug     bool
		wantErr   bool
		wantLevel zapcore.Level
	}{
		{name: "json info", level: "info", format: "json", wantLevel: zapcore.InfoLevel},
		{name: "empty format defaults to json", level: "warn", format: "", wantLevel: zapcore.WarnLevel},
		{name: "console debug", level: "debug", format: "console", wantLevel: zapcore.DebugLevel},
		{name: "debug flag ignores level and format", level: "bogus", format: "xml", debug: true, wantLevel: zapcore.DebugLevel},
		{name: "invalid level", level: "loud", format: "json", wantErr: true},
		{name: "invalid format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.format, tt.debug)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}
