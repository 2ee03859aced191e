package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, env := range []string{EnvLocal, EnvDev, EnvProd, "unknown"} {
		t.Run(env, func(t *testing.T) {
			log := New(env)
			require.NotNil(t, log)
		})
	}

	prod := New(EnvProd)
	assert.False(t, prod.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, New(EnvDev).Enabled(context.Background(), slog.LevelDebug))
}
