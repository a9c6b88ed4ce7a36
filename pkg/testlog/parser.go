package testlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/radiofrance/testlog2junit/internal/logger"
)

const (
	runningPrefix   = "Running "
	durationPrefix  = "Test took "
	durationSuffix  = "ns"
	resultOK        = "OK"
	resultFailed    = "FAILED"
	suiteSeparator  = "::"
	suiteMarkerSize = 4

	maxLineSize = 64 * 1024 * 1024
)

var (
	ErrInvalidDuration  = errors.New("invalid test duration")
	ErrInvalidEncoding  = errors.New("line is not valid UTF-8")
	ErrMissingSeparator = errors.New("qualified test name has no \"::\" separator")
)

// ParseError reports the log line at which parsing stopped.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser turns log lines into finalized records. A Parser holds at most one open record at a
// time; it must not be shared between goroutines.
type Parser struct {
	current *Record
	records []Record
	line    int
}

func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the log at path and parses it entirely.
func ParseFile(path string) ([]Record, error) {
	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("can't open test log %s: %w", path, err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Errorf("can't close file %s: %v", path, err)
		}
	}()

	return NewParser().Parse(file)
}

// Parse reads every line of r and returns the records closed by a duration line, in the order
// they were closed. The first malformed line aborts parsing.
func (p *Parser) Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	for scanner.Scan() {
		if err := p.ParseLine(scanner.Bytes()); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("can't read test log: %w", err)
	}

	if p.current != nil {
		logger.Debugf("Dropping test %s: log ended before its duration line", p.current.QualifiedName())
		p.current = nil
	}

	return p.Records(), nil
}

// ParseLine feeds a single raw line to the state machine.
func (p *Parser) ParseLine(raw []byte) error {
	p.line++

	if !utf8.Valid(raw) {
		return &ParseError{Line: p.line, Err: ErrInvalidEncoding}
	}

	line := strings.TrimSpace(string(raw))

	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, runningPrefix):
		return p.startTest(strings.TrimPrefix(line, runningPrefix))
	case strings.HasPrefix(line, durationPrefix) && strings.HasSuffix(line, durationSuffix):
		return p.finishTest(line[len(durationPrefix) : len(line)-len(durationSuffix)])
	case line == resultOK:
		p.setResult(ResultPassed)
	case line == resultFailed:
		p.setResult(ResultFailed)
	default:
		if p.current != nil {
			p.current.AppendComment(line)
		}
	}

	return nil
}

// Records returns a copy of the records finalized so far.
func (p *Parser) Records() []Record {
	records := make([]Record, len(p.records))
	copy(records, p.records)

	return records
}

func (p *Parser) startTest(qualifiedID string) error {
	suite, name, err := ParseSuiteName(qualifiedID)
	if err != nil {
		return &ParseError{Line: p.line, Err: err}
	}

	if p.current != nil {
		logger.Debugf("Dropping test %s: a new test started before its duration line",
			p.current.QualifiedName())
	}

	p.current = newRecord(suite, name)

	return nil
}

func (p *Parser) finishTest(rawNanos string) error {
	if p.current == nil {
		return nil
	}

	nanos, err := strconv.ParseInt(rawNanos, 10, 64)
	if err != nil {
		return &ParseError{Line: p.line, Err: fmt.Errorf("%w %q: %w", ErrInvalidDuration, rawNanos, err)}
	}

	p.current.SetDurationNanos(nanos)
	p.records = append(p.records, *p.current)
	p.current = nil

	return nil
}

func (p *Parser) setResult(result Result) {
	if p.current != nil {
		p.current.Result = result
	}
}

// ParseSuiteName splits a qualified test identifier like "suiteABCD::Type::method" into the suite
// ("suite", without its 4-character marker) and the dotted test name ("Type.method").
// A suite part shorter than the marker gives an empty suite.
func ParseSuiteName(qualifiedID string) (string, string, error) {
	rawSuite, rest, found := strings.Cut(qualifiedID, suiteSeparator)
	if !found {
		return "", "", fmt.Errorf("%w: %q", ErrMissingSeparator, qualifiedID)
	}

	suite := ""
	if runes := []rune(rawSuite); len(runes) > suiteMarkerSize {
		suite = string(runes[:len(runes)-suiteMarkerSize])
	}

	return suite, strings.ReplaceAll(rest, suiteSeparator, "."), nil
}
