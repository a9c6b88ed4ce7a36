package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/radiofrance/testlog2junit/internal/logger"
	"github.com/radiofrance/testlog2junit/pkg/junit"
	"github.com/radiofrance/testlog2junit/pkg/testlog"
)

const reportFileMode = 0o644

// Options customizes the generated report.
type Options struct {
	// Name is written as the "name" attribute of the testsuite element when not empty.
	Name string
	// StripColors removes ANSI color sequences from diagnostic text.
	StripColors bool
}

// Builder accumulates finalized records and serializes them as a single testsuite.
type Builder struct {
	opts    Options
	records []testlog.Record
}

func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Add appends one record to the report.
func (b *Builder) Add(record testlog.Record) {
	b.records = append(b.records, record)
}

// AddAll appends records in the given order.
func (b *Builder) AddAll(records []testlog.Record) {
	b.records = append(b.records, records...)
}

// Records returns a copy of the accumulated records.
func (b *Builder) Records() []testlog.Record {
	records := make([]testlog.Record, len(b.records))
	copy(records, b.records)

	return records
}

// Testsuite converts the accumulated records into the JUnit document tree.
func (b *Builder) Testsuite() junit.Testsuite {
	suite := junit.Testsuite{
		Name:      b.opts.Name,
		Tests:     len(b.records),
		TestCases: make([]junit.TestCase, 0, len(b.records)),
	}

	var total float64
	for _, record := range b.records {
		total += record.Duration
		if record.Result == testlog.ResultFailed {
			suite.Failures++
		}

		suite.TestCases = append(suite.TestCases, b.testCase(record))
	}

	suite.Time = junit.FormatSeconds(total)

	return suite
}

func (b *Builder) testCase(record testlog.Record) junit.TestCase {
	testCase := junit.TestCase{
		Name:      record.Name,
		ClassName: record.Suite,
		Time:      junit.FormatSeconds(record.Duration),
	}

	if record.HasComment() {
		comment := record.CommentText()
		if b.opts.StripColors {
			comment = string(RemoveTerminalColors([]byte(comment)))
		}

		testCase.SystemErr = &comment
	}

	if record.Result == testlog.ResultFailed {
		testCase.Failure = &junit.Failure{}
	}

	return testCase
}

// Encode writes the report as an XML document to w.
func (b *Builder) Encode(w io.Writer) error {
	return junit.Encode(w, b.Testsuite())
}

// WriteFile writes the report next to path in a temporary file, then renames it over path.
// On failure, path is left untouched.
func (b *Builder) WriteFile(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("can't create report file in %s: %w", filepath.Dir(path), err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rmErr := os.Remove(tmp.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logger.Warnf("can't remove temporary report %s: %v", tmp.Name(), rmErr)
		}
	}()

	if err = b.Encode(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("can't write report %s: %w", path, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("can't close report %s: %w", tmp.Name(), err)
	}

	if err = os.Chmod(tmp.Name(), reportFileMode); err != nil {
		return fmt.Errorf("can't set permissions on report %s: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("can't move report to %s: %w", path, err)
	}

	logger.Debugf("Report with %d test(s) written to %s", len(b.records), path)

	return nil
}
