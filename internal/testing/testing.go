// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
)

// MockClipboard is an in-memory test double for services.Clipboard.
type MockClipboard struct {
	mu       sync.Mutex
	text     string
	ReadErr  error
	WriteErr error
	Writes   []string
	reads    int
}

// NewMockClipboard returns a [MockClipboard] holding text.
func NewMockClipboard(text string) *MockClipboard {
	return &MockClipboard{text: text}
}

func (m *MockClipboard) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.text, nil
}

func (m *MockClipboard) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.text = text
	m.Writes = append(m.Writes, text)
	return nil
}

// Set replaces the clipboard contents as if another program copied text.
func (m *MockClipboard) Set(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

// Reads returns how many times ReadAll was called.
func (m *MockClipboard) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// SequenceClipboard returns successive values from a script on each read, repeating the last one.
type SequenceClipboard struct {
	mu     sync.Mutex
	values []string
	idx    int
}

func NewSequenceClipboard(values ...string) *SequenceClipboard {
	return &SequenceClipboard{values: values}
}

func (s *SequenceClipboard) ReadAll() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return "", nil
	}
	v := s.values[s.idx]
	if s.idx < len(s.values)-1 {
		s.idx++
	}
	return v, nil
}

func (s *SequenceClipboard) WriteAll(text string) error { return nil }

// FailingSlot is a key-value slot whose reads and writes fail with the configured errors.
//
// A nil error falls through to an in-memory map.
type FailingSlot struct {
	mu       sync.Mutex
	ReadErr  error
	WriteErr error
	values   map[string][]byte
	Writes   int
}

func NewFailingSlot(readErr, writeErr error) *FailingSlot {
	return &FailingSlot{ReadErr: readErr, WriteErr: writeErr, values: map[string][]byte{}}
}

func (f *FailingSlot) Read(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	v, ok := f.values[key]
	if !ok {
		return nil, errors.New("slot is empty")
	}
	return v, nil
}

func (f *FailingSlot) Write(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.values[key] = append([]byte(nil), value...)
	return nil
}

// Put seeds key with raw bytes, bypassing WriteErr.
func (f *FailingSlot) Put(key string, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

func (f *FailingSlot) Close() error { return nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
