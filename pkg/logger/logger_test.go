package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const infoLevel int8 = 0

// withGlobal swaps the package logger for the duration of a test.
func withGlobal(t *testing.T, lg *logr.Logger) {
	t.Helper()
	orig := globalLogrLogger
	globalLogrLogger = lg
	t.Cleanup(func() { globalLogrLogger = orig })
}

func TestGetIsSingleton(t *testing.T) {
	first := Get(infoLevel)
	require.NotNil(t, first)
	assert.Same(t, first, Get(-1))
}

func TestGetWithoutGlobalFallsBackToNoop(t *testing.T) {
	_ = Get(infoLevel)
	withGlobal(t, nil)
	assert.Same(t, &defaultNoopLogger, Get(infoLevel))
	assert.Same(t, &defaultNoopLogger, GetGlobalLogger())
	assert.Same(t, &defaultNoopLogger, GetNoopLogger())
}

func TestWithLogger(t *testing.T) {
	lg := Get(infoLevel)
	ctx := WithLogger(context.Background(), lg)
	assert.Same(t, lg, FromContext(ctx))

	assert.True(t, ctx == WithLogger(ctx, lg), "same logger keeps the context")

	other := logr.Discard()
	replaced := WithLogger(ctx, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestFromContextFallbacks(t *testing.T) {
	assert.Same(t, Get(infoLevel), FromContext(context.Background()))

	withGlobal(t, nil)
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestGetGlobalLogger(t *testing.T) {
	mock := logr.Discard()
	withGlobal(t, &mock)
	assert.Same(t, &mock, GetGlobalLogger())
}

func TestSyncWithoutLogger(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	t.Cleanup(func() { globalZapLogger = orig })
	assert.NotPanics(t, Sync)
}

func TestWithValues(t *testing.T) {
	lg := Get(infoLevel)
	tagged := WithValues(lg, ComponentKey, "client")
	require.NotNil(t, tagged)
	assert.NotSame(t, lg, tagged)
	assert.NotSame(t, lg, WithValues(lg))

	assert.Panics(t, func() { _ = WithValues(nil, "key", "value") })
}

func TestNewZapLoggerWritesJSONWithBuildFields(t *testing.T) {
	var buf bytes.Buffer
	zl := newZapLogger(-1, zapcore.AddSync(&buf))
	lg := zapr.NewLogger(zl)
	lg.V(1).Info("fetching suggestions", RequestIDKey, "abc")
	require.NoError(t, zl.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetching suggestions", entry[MessageKey])
	assert.Equal(t, "abc", entry[RequestIDKey])
	assert.Contains(t, entry, TimeStampKey)
	assert.Contains(t, entry, VersionKey)
	assert.Contains(t, entry, GoVersionKey)
}

func TestNewZapLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	zl := newZapLogger(0, zapcore.AddSync(&buf))
	lg := zapr.NewLogger(zl)
	lg.V(1).Info("hidden")
	lg.Info("shown")
	require.NoError(t, zl.Sync())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestUseFileAfterInitFails(t *testing.T) {
	_ = Get(infoLevel)
	_, err := UseFile(filepath.Join(t.TempDir(), "x.log"))
	assert.Error(t, err)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(fmt.Errorf("sync /dev/stderr: %w", syscall.EINVAL)))
	assert.True(t, isIgnorableSyncError(errors.New("The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}
