package logger_test

import (
	"carbonaudit/pkg/logger"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(level)
	logger.SetDefault(zap.New(core))
	t.Cleanup(func() { logger.SetDefault(zap.NewNop()) })

	return logs
}

func TestSetup(t *testing.T) {
	for _, env := range []string{logger.DevelopmentEnvironment, logger.ProductionEnvironment, "staging"} {
		t.Run(env, func(t *testing.T) {
			require.NotPanics(t, func() { logger.Setup(env) })
			require.NotNil(t, logger.Get(context.Background()))
		})
	}

	logger.Setup(logger.DevelopmentEnvironment)
	require.True(t, logger.Get(context.Background()).Core().Enabled(zapcore.DebugLevel))

	logger.Setup(logger.ProductionEnvironment)
	require.False(t, logger.Get(context.Background()).Core().Enabled(zapcore.DebugLevel))
}

func TestSetup_LevelOverride(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment, "warn")
	core := logger.Get(context.Background()).Core()
	require.False(t, core.Enabled(zapcore.InfoLevel))
	require.True(t, core.Enabled(zapcore.WarnLevel))

	// unparsable levels keep the environment default
	logger.Setup(logger.DevelopmentEnvironment, "chatty")
	require.True(t, logger.Get(context.Background()).Core().Enabled(zapcore.DebugLevel))

	logger.Setup(logger.ProductionEnvironment, "")
	require.True(t, logger.Get(context.Background()).Core().Enabled(zapcore.InfoLevel))
}

func TestWithFields(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	ctx := logger.WithFields(context.Background(), zap.String("auditID", "a-1"))
	ctx = logger.WithFields(ctx, zap.String("url", "https://example.com"))
	logger.Info(ctx, "audit started")
	logger.Debug(context.Background(), "no fields")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "audit started", entries[0].Message)
	require.Equal(t, map[string]any{"auditID": "a-1", "url": "https://example.com"}, entries[0].ContextMap())
	require.Empty(t, entries[1].Context)
}

func TestWithLogger(t *testing.T) {
	_ = observe(t, zapcore.DebugLevel)

	core, scoped := observer.New(zapcore.WarnLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Info(ctx, "dropped")
	logger.Warn(ctx, "kept")
	logger.Error(ctx, "kept too")

	require.Equal(t, 2, scoped.Len())
	require.Equal(t, 1, scoped.FilterMessage("kept").Len())
}

func TestSlog(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	logger.Slog(context.Background()).Info("job completed", "attempt", 2)

	entries := logs.FilterMessage("job completed").All()
	require.Len(t, entries, 1)
	require.EqualValues(t, 2, entries[0].ContextMap()["attempt"])
	require.NotPanics(t, logger.Sync)
}
