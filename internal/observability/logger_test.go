// File: internal/observability/logger_test.go
package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/expectlint/internal/config"
)

// syncBuffer adapts bytes.Buffer to zapcore.WriteSyncer.
type syncBuffer struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	syncCalls int
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Sync() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.syncCalls++
	return nil
}

func (b *syncBuffer) syncs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syncCalls
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func baseConfig() config.LoggerConfig {
	return config.LoggerConfig{
		Level:       "debug",
		Format:      "console",
		ServiceName: "expectlint",
	}
}

func TestInitialize_ConsoleOutput(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &syncBuffer{}
	Initialize(baseConfig(), buf)

	logger := GetLogger()
	logger.Named("walker").Info("analysis started")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "expectlint.walker.")
	assert.Contains(t, out, "analysis started")
}

func TestInitialize_OnlyOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	first := &syncBuffer{}
	second := &syncBuffer{}

	Initialize(baseConfig(), first)
	Initialize(baseConfig(), second)

	GetLogger().Info("routed to the first writer")
	assert.Contains(t, first.String(), "routed to the first writer")
	assert.Empty(t, second.String())
}

func TestInitialize_LevelFiltering(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	cfg := baseConfig()
	cfg.Level = "warn"

	buf := &syncBuffer{}
	Initialize(cfg, buf)

	GetLogger().Info("suppressed")
	GetLogger().Warn("emitted")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")
}

func TestInitialize_InvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	cfg := baseConfig()
	cfg.Level = "chatty"

	buf := &syncBuffer{}
	Initialize(cfg, buf)

	GetLogger().Debug("below info")
	GetLogger().Info("at info")

	out := buf.String()
	assert.NotContains(t, out, "below info")
	assert.Contains(t, out, "at info")
}

func TestInitialize_FileCoreWritesJSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logFile := filepath.Join(t.TempDir(), "expectlint.log")
	cfg := baseConfig()
	cfg.LogFile = logFile

	buf := &syncBuffer{}
	Initialize(cfg, buf)
	GetLogger().Info("persisted entry")
	Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"persisted entry"`)
	// Console core still receives the same entry.
	assert.Contains(t, buf.String(), "persisted entry")
}

func TestSync_FlushesTheActiveSinks(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	// Before initialization there is nothing to flush; must not panic.
	Sync()

	buf := &syncBuffer{}
	Initialize(baseConfig(), buf)
	GetLogger().Info("flushed on exit")
	Sync()

	assert.Positive(t, buf.syncs())
}

func TestColorizedLevelEncoder(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	cfg := baseConfig()
	cfg.Colors = config.ColorConfig{Info: "green", Warn: "yellow"}

	buf := &syncBuffer{}
	Initialize(cfg, buf)

	GetLogger().Info("tinted")
	GetLogger().Warn("also tinted")

	out := buf.String()
	assert.Contains(t, out, colorGreen+"INFO"+colorReset)
	assert.Contains(t, out, colorYellow+"WARN"+colorReset)
}

func TestGetLogger_FallbackBeforeInitialize(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
	assert.True(t, strings.Contains(logger.Name(), "fallback") || logger.Name() == "",
		"fallback logger expected before initialization")
}

func TestGetEncoder_JSONFormat(t *testing.T) {
	enc := getEncoder(config.LoggerConfig{Format: "json"})
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Message: "structured"}
	buf, err := enc.EncodeEntry(entry, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
	assert.Contains(t, buf.String(), `"msg":"structured"`)
}
