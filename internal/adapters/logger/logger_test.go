package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/refgraph/internal/adapters/logger"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	lg.Info("some message")
	lg.Warn("some warning")

	assert.Equal(t, "some message\n! some warning\n", buf.String())
}

func TestLogger_Verbose(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetVerbose(true)

	lg.Debug("resolving Foo")
	assert.Equal(t, "resolving Foo\n", buf.String())

	buf.Reset()
	lg.SetVerbose(false)
	lg.Debug("resolving Foo")
	assert.Empty(t, buf.String())
}

func TestLogger_VerboseSurvivesModeSwitch(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetVerbose(true)
	lg.SetJSON(true)

	lg.Debug("resolving Foo")
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestLogger_ErrorPretty(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(zerr.With(zerr.Wrap(domain.ErrUnresolvedReference, "component not found in any search location"),
		"reference", "Foo"), "project", "App")
	lg.Error(err)

	want := "✗ Error: component not found in any search location\n" +
		"       project: App\n" +
		"       reference: Foo\n\n" +
		"  Caused by:\n" +
		"    → unresolved reference\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(errors.New("boom"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "boom", record["error"])
}

func TestLogger_SetOutputKeepsJSON(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
}
