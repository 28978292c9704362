package logging

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vango-dev/htmlkit/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		wantErr bool
	}{
		{"info", "json", false},
		{"debug", "console", false},
		{"warn", "", false},
		{"loud", "json", true},
		{"info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			l, err := New(tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "H020", errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			want, _ := zapcore.ParseLevel(tt.level)
			assert.True(t, l.Core().Enabled(want))
			assert.False(t, l.Core().Enabled(want-1))
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestErrorField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	l.Info("coded", Error(errors.New("H003")))
	l.Info("plain", Error(stderrors.New("boom")))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	coded := entries[0].ContextMap()["error"].(map[string]any)
	assert.Equal(t, "H003", coded[FieldCode])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}
