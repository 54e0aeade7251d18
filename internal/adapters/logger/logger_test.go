package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"joytop-admin-service/internal/core/port"

	"github.com/stretchr/testify/require"
)

func TestSlogAdapter_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogAdapter(SlogConfig{Writer: buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"trace_id": "t-1"}).Error("Mutation failed", errors.New("boom"), port.Fields{"resource": "banners"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "Mutation failed", entry["msg"])
	require.Equal(t, "ERROR", entry["level"])
	require.Equal(t, "t-1", entry["trace_id"])
	require.Equal(t, "banners", entry["resource"])
	require.Equal(t, "boom", entry["error"])
}

func TestSlogAdapter_LevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogAdapter(SlogConfig{Writer: buf, Level: slog.LevelWarn})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", nil)

	require.Equal(t, 1, strings.Count(buf.String(), "\n"))
	require.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel(" error "))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

type fakeFluent struct {
	mu    sync.Mutex
	tags  []string
	posts []map[string]interface{}
	err   error
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posts = append(f.posts, message.(map[string]interface{}))
	return f.err
}

func (f *fakeFluent) Close() error { return nil }

func TestFluentLoggerAdapter(t *testing.T) {
	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)

	child := adapter.WithFields(port.Fields{"service": "joytop-admin"})
	child.Debug("dropped", nil)
	child.Info("view mounted", port.Fields{"resource": "districts"})
	child.Error("fetch failed", errors.New("timeout"), nil)

	require.Equal(t, []string{"info", "error"}, client.tags)
	require.Equal(t, "joytop-admin", client.posts[0]["service"])
	require.Equal(t, "districts", client.posts[0]["resource"])
	require.Equal(t, "timeout", client.posts[1]["error"])
	require.Equal(t, "fetch failed", client.posts[1]["message"])

	client.err = errors.New("connection refused")
	child.Warn("lost", nil)
	require.Equal(t, int64(1), adapter.PostErrors())

	_, err = NewFluentLoggerAdapter(nil, nil)
	require.Error(t, err)
}

type countingLogger struct {
	port.LoggerPort
	mu     sync.Mutex
	counts map[string]int
}

func newCountingLogger() *countingLogger {
	return &countingLogger{counts: map[string]int{}}
}

func (c *countingLogger) inc(level string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[level]++
}

func (c *countingLogger) Info(msg string, fields port.Fields)             { c.inc("info") }
func (c *countingLogger) Warn(msg string, fields port.Fields)             { c.inc("warn") }
func (c *countingLogger) Error(msg string, err error, fields port.Fields) { c.inc("error") }
func (c *countingLogger) Debug(msg string, fields port.Fields)            { c.inc("debug") }
func (c *countingLogger) WithFields(fields port.Fields) port.LoggerPort   { return c }

func TestMultiLoggerAdapter(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	require.Error(t, err)

	single := newCountingLogger()
	got, err := NewMultiloggerAdapter(single, nil)
	require.NoError(t, err)
	require.Same(t, single, got)

	a, b := newCountingLogger(), newCountingLogger()
	multi, err := NewMultiloggerAdapter(a, b)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"k": "v"}).Warn("w", nil)
	multi.Error("e", nil, nil)
	for _, l := range []*countingLogger{a, b} {
		require.Equal(t, 1, l.counts["warn"])
		require.Equal(t, 1, l.counts["error"])
	}
}

func TestAmqpLoggerBridge(t *testing.T) {
	buf := &bytes.Buffer{}
	bridge := NewAmqpLoggerBridge(NewSlogAdapter(SlogConfig{Writer: buf, Level: slog.LevelDebug, IsJSON: true}))

	bridge.Debug("Declaring exchange", "name", "admin_exchange", "type", "topic", "dangling")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "rabbitmq", entry["component"])
	require.Equal(t, "admin_exchange", entry["name"])
	require.Equal(t, "topic", entry["type"])
	require.Equal(t, "dangling", entry["extra"])
}
