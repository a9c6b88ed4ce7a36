package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/radiofrance/testlog2junit/internal/logger"
	"github.com/radiofrance/testlog2junit/pkg/junit"
	"github.com/radiofrance/testlog2junit/pkg/report"
	"github.com/radiofrance/testlog2junit/pkg/testlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lvl := "fatal"
	logger.SetLevel(&lvl)
	os.Exit(m.Run())
}

func strPtr(s string) *string {
	return &s
}

func sampleRecords(t *testing.T) []testlog.Record {
	t.Helper()

	records, err := testlog.ParseFile("../../test/fixtures/testlog/sample.log")
	require.NoError(t, err)

	return records
}

func TestBuilder_AddKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	builder := report.NewBuilder(report.Options{})
	builder.Add(testlog.Record{Suite: "b", Name: "Second"})
	builder.AddAll([]testlog.Record{
		{Suite: "a", Name: "First"},
		{Suite: "b", Name: "Second"},
	})

	records := builder.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "Second", records[0].Name)
	assert.Equal(t, "First", records[1].Name)
	assert.Equal(t, "Second", records[2].Name)

	records[0].Name = "mutated"
	assert.Equal(t, "Second", builder.Records()[0].Name)
}

func TestBuilder_Testsuite(t *testing.T) {
	t.Parallel()

	builder := report.NewBuilder(report.Options{Name: "nightly"})
	builder.Add(testlog.Record{Suite: "mysuite", Name: "Foo.bar", Result: testlog.ResultPassed, Duration: 1.5})
	builder.Add(testlog.Record{
		Suite:    "mysuite",
		Name:     "Foo.baz",
		Comment:  strPtr("line 1\nline 2"),
		Result:   testlog.ResultFailed,
		Duration: 0.25,
	})
	builder.Add(testlog.Record{Suite: "other", Name: "Unknown", Comment: strPtr("no verdict")})

	expected := junit.Testsuite{
		Name:     "nightly",
		Tests:    3,
		Failures: 1,
		Time:     "1.75",
		TestCases: []junit.TestCase{
			{Name: "Foo.bar", ClassName: "mysuite", Time: "1.5"},
			{
				Name:      "Foo.baz",
				ClassName: "mysuite",
				Time:      "0.25",
				SystemErr: strPtr("line 1\nline 2"),
				Failure:   &junit.Failure{},
			},
			{Name: "Unknown", ClassName: "other", Time: "0.0", SystemErr: strPtr("no verdict")},
		},
	}
	assert.Equal(t, expected, builder.Testsuite())
}

func TestBuilder_StripColors(t *testing.T) {
	t.Parallel()

	record := testlog.Record{Name: "Colored", Comment: strPtr("\x1b[31mred\x1b[0m text")}

	tests := []struct {
		name     string
		opts     report.Options
		expected string
	}{
		{"colors kept by default", report.Options{}, "\x1b[31mred\x1b[0m text"},
		{"colors stripped", report.Options{StripColors: true}, "red text"},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			builder := report.NewBuilder(test.opts)
			builder.Add(record)

			suite := builder.Testsuite()
			require.Len(t, suite.TestCases, 1)
			require.NotNil(t, suite.TestCases[0].SystemErr)
			assert.Equal(t, test.expected, *suite.TestCases[0].SystemErr)
		})
	}
}

func TestBuilder_Encode(t *testing.T) {
	t.Parallel()

	expected, err := os.ReadFile("../../test/fixtures/testlog/expected_sample.xml")
	require.NoError(t, err)

	builder := report.NewBuilder(report.Options{})
	builder.AddAll(sampleRecords(t))

	first := &bytes.Buffer{}
	require.NoError(t, builder.Encode(first))
	assert.Equal(t, string(expected), first.String())

	second := &bytes.Buffer{}
	require.NoError(t, builder.Encode(second))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestBuilder_EncodeFailedTinyDuration(t *testing.T) {
	t.Parallel()

	builder := report.NewBuilder(report.Options{})
	builder.Add(testlog.Record{Suite: "mysuite", Name: "Foo.bar", Result: testlog.ResultFailed, Duration: 100 / 1e9})

	buf := &bytes.Buffer{}
	require.NoError(t, builder.Encode(buf))
	assert.Contains(t, buf.String(), `<testcase name="Foo.bar" classname="mysuite" time="0.0000001">`)
	assert.Contains(t, buf.String(), `<failure></failure>`)
	assert.NotContains(t, buf.String(), `system-err`)
}

func TestBuilder_WriteFile(t *testing.T) {
	t.Parallel()

	t.Run("new file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		output := filepath.Join(dir, "test_results.xml")

		builder := report.NewBuilder(report.Options{})
		builder.AddAll(sampleRecords(t))
		require.NoError(t, builder.WriteFile(output))

		actual, err := os.ReadFile(output)
		require.NoError(t, err)
		expected, err := os.ReadFile("../../test/fixtures/testlog/expected_sample.xml")
		require.NoError(t, err)
		assert.Equal(t, string(expected), string(actual))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file must not be left behind")
	})

	t.Run("existing file is replaced", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "test_results.xml")
		require.NoError(t, os.WriteFile(output, []byte("stale content"), 0o600))

		require.NoError(t, report.NewBuilder(report.Options{}).WriteFile(output))

		actual, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.NotContains(t, string(actual), "stale content")
		assert.Contains(t, string(actual), `<testsuite tests="0" failures="0" time="0.0"></testsuite>`)

		info, err := os.Stat(output)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "missing", "test_results.xml")
		err := report.NewBuilder(report.Options{}).WriteFile(output)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NoFileExists(t, output)
	})
}
