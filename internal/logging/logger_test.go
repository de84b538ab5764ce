package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.DebugLevel, false},
		{"info", log.InfoLevel, false},
		{"warn", log.WarnLevel, false},
		{"warning", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"DEBUG", log.DebugLevel, false},
		{"fatal", log.InfoLevel, true},
		{"", log.InfoLevel, true},
		{"loud", log.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			got, err := logging.ParseLevel(tt.level)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_UnknownLevelMeansInfo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.InfoLevel, logging.New("chatty").GetLevel())
	assert.Equal(t, log.WarnLevel, logging.New("warning").GetLevel())
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")

	logger.Debug("resolved fixers", logging.FieldFixers, 3)
	assert.Contains(t, buf.String(), "gophpfix")
	assert.Contains(t, buf.String(), "resolved fixers")
	assert.Contains(t, buf.String(), "fixers=3")
}

// Tests touching the default logger are not parallel.

func TestSetLevel(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	logging.SetDefault(logging.New("info"))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestSetDefault(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.New("error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetDefault(nil)
	assert.Same(t, replacement, logging.Default())
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewInteractive(&buf)
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Info("available fixers", logging.FieldName, "array_syntax")
	assert.Contains(t, buf.String(), "available fixers")
	assert.Contains(t, buf.String(), "name=array_syntax")
	assert.NotContains(t, buf.String(), "gophpfix")

	logger.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	assert.NotNil(t, logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.NotNil(t, logging.FromContext(nil))
}

func TestForFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "info"))

	logging.ForFile(ctx, "src/App.php").Warn("file did not converge")
	assert.Contains(t, buf.String(), "path=src/App.php")
	assert.Contains(t, buf.String(), "file did not converge")
}
