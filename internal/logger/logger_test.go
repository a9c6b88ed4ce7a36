//nolint:paralleltest
package logger_test

import (
	"bytes"
	"testing"

	"github.com/radiofrance/testlog2junit/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	original := logger.Get()
	t.Cleanup(func() {
		logger.SetOutput(original.Writer)
		lvl := original.Level.String()
		logger.SetLevel(&lvl)
	})

	buf := &bytes.Buffer{}
	logger.SetOutput(buf)

	infoLvl := "info"
	logger.SetLevel(&infoLvl)
	logger.Infof("this is info")
	logger.Debugf("should not be displayed")

	debugLvl := "debug"
	logger.SetLevel(&debugLvl)
	logger.Debugf("should be displayed")
	assert.Equal(t, logger.LogLevelDebug, logger.Get().Level)

	logger.Warnf("this is a warning")
	logger.Errorf("this is an error")

	output := buf.String()
	assert.Contains(t, output, "this is info")
	assert.NotContains(t, output, "should not be displayed")
	assert.Contains(t, output, "should be displayed")
	assert.Contains(t, output, "this is a warning")
	assert.Contains(t, output, "this is an error")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logger.LogLevel
	}{
		{"debug", logger.LogLevelDebug},
		{"", logger.LogLevelInfo},
		{"INFO", logger.LogLevelInfo},
		{"warning", logger.LogLevelWarn},
		{"warn", logger.LogLevelWarn},
		{"error", logger.LogLevelError},
		{" fatal ", logger.LogLevelFatal},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			actual, err := logger.ParseLevel(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}

	_, err := logger.ParseLevel("verbose")
	assert.ErrorContains(t, err, `"verbose" is not a valid log level`)
}
