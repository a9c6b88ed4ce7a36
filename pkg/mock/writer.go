package mock

import (
	"strings"
	"sync"
)

// Writer is a concurrency-safe in-memory io.Writer for asserting on command output.
type Writer struct {
	lock  sync.Locker
	bytes []byte
}

func NewWriter() *Writer {
	return &Writer{
		lock: new(sync.Mutex),
	}
}

func (r *Writer) Write(p []byte) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.bytes = append(r.bytes, p...)

	return len(p), nil
}

func (r *Writer) String() string {
	r.lock.Lock()
	defer r.lock.Unlock()

	return string(r.bytes)
}

// Lines returns the written output split on newlines, without the trailing empty line.
func (r *Writer) Lines() []string {
	out := strings.TrimSuffix(r.String(), "\n")
	if out == "" {
		return nil
	}

	return strings.Split(out, "\n")
}
