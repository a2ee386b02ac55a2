package persistence

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/helpdesk-admin/internal/config"
)

func TestQueryTracer(t *testing.T) {
	for _, level := range []string{"", "none"} {
		tracer, err := queryTracer(level, zap.NewNop())
		require.NoError(t, err)
		require.Nil(t, tracer)
	}

	_, err := queryTracer("loud", zap.NewNop())
	require.Error(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	tracer, err := queryTracer("warn", zap.New(core))
	require.NoError(t, err)
	require.Equal(t, tracelog.LogLevelWarn, tracer.LogLevel)

	tracer.Logger.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"sql": "SELECT 1"})
	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	require.Equal(t, "pgx", entries[0].LoggerName)
	require.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
}

func TestNewPostgresWithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, pg.PoolHandle())
	require.Error(t, pg.Ping(context.Background()))
}
