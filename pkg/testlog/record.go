package testlog

import (
	"strings"
	"time"
)

const (
	ResultUnknown Result = iota
	ResultPassed
	ResultFailed
)

// Result is the outcome of a single test.
type Result int

func (r Result) String() string {
	switch r {
	case ResultPassed:
		return "PASSED"
	case ResultFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Record holds everything the log told about one executed test.
type Record struct {
	Suite    string
	Name     string
	Comment  *string
	Result   Result
	Duration float64 // seconds
}

func newRecord(suite, name string) *Record {
	return &Record{
		Suite:  suite,
		Name:   name,
		Result: ResultUnknown,
	}
}

// AppendComment adds a line of diagnostic text, newline separated from the previous ones.
func (r *Record) AppendComment(line string) {
	if r.Comment == nil {
		r.Comment = &line
		return
	}

	joined := *r.Comment + "\n" + line
	r.Comment = &joined
}

// SetDurationNanos stores a duration given in nanoseconds as seconds.
func (r *Record) SetDurationNanos(nanos int64) {
	r.Duration = float64(nanos) / float64(time.Second)
}

// HasComment reports whether at least one diagnostic line was attached.
func (r Record) HasComment() bool {
	return r.Comment != nil
}

// CommentText returns the diagnostic text, or an empty string when there is none.
func (r Record) CommentText() string {
	if r.Comment == nil {
		return ""
	}

	return *r.Comment
}

// QualifiedName is the "suite.name" form used in logs and summaries.
func (r Record) QualifiedName() string {
	if r.Suite == "" {
		return r.Name
	}

	return strings.Join([]string{r.Suite, r.Name}, ".")
}
