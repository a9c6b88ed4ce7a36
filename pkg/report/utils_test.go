package report_test

import (
	"testing"

	"github.com/radiofrance/testlog2junit/pkg/report"
	"github.com/stretchr/testify/assert"
)

func TestRemoveTerminalColors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single color",
			input:    "\u001b[31mHello World",
			expected: "Hello World",
		},
		{
			name:     "several colors",
			input:    "\u001b[30mA \u001b[31m B \u001b[32m C \u001b[33m D\u001b[0m",
			expected: "A  B  C  D",
		},
		{
			name:     "bright color",
			input:    "\u001B[91mE: assertion failed",
			expected: "E: assertion failed",
		},
		{
			name:     "multiple attributes",
			input:    "\u001b[1;31;40mbold red\u001b[K",
			expected: "bold red",
		},
		{
			name:     "no color",
			input:    "plain text",
			expected: "plain text",
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			actual := report.RemoveTerminalColors([]byte(test.input))
			assert.Equal(t, test.expected, string(actual))
		})
	}
}
