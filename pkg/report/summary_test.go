package report_test

import (
	"bytes"
	"testing"

	"github.com/radiofrance/testlog2junit/pkg/report"
	"github.com/stretchr/testify/assert"
)

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	report.RenderSummary(buf, sampleRecords(t))

	output := buf.String()
	assert.Contains(t, output, "SUITE")
	assert.Contains(t, output, "StringsTest.Trim")
	assert.Contains(t, output, "StringsTest.Split")
	assert.Contains(t, output, "Routing.Simple")
	assert.Contains(t, output, "PASSED")
	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "UNKNOWN")
	assert.Contains(t, output, "3 test(s), 1 failed, 3.75s")
	assert.NotContains(t, output, "Routing.Unfinished")
}

func TestRenderSummary_Empty(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	report.RenderSummary(buf, nil)

	assert.Contains(t, buf.String(), "0 test(s), 0 failed, 0.0s")
}
