package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		enabled zapcore.Level
		want    bool
	}{
		{"production default hides debug", "production", "", zapcore.DebugLevel, false},
		{"development default shows debug", "development", "", zapcore.DebugLevel, true},
		{"explicit warn hides info", "development", "warn", zapcore.InfoLevel, false},
		{"unknown level keeps default", "production", "loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.env, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Core().Enabled(tt.enabled))
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
