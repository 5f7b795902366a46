package testutil

import (
	"strings"
	"sync"
	"testing"

	"github.com/Narendra3579/ssvteachersapp/core"
	inmemstore "github.com/Narendra3579/ssvteachersapp/storage/kvstore/inmem"
)

// Logger records log entries for assertions. Fatal panics instead of
// exiting the test process.
type Logger struct {
	mu      sync.Mutex
	entries []string
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger { return &Logger{} }

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
}

func (l *Logger) Enable(bool) {}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg); panic(msg) }

// Logged reports whether any recorded entry contains substr.
func (l *Logger) Logged(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

// NewAccessor returns an accessor over a fresh single-handle in-memory store.
func NewAccessor(t *testing.T) (*core.Accessor, *inmemstore.DB, *Logger) {
	t.Helper()
	db := inmemstore.Open()
	logger := NewLogger()
	return core.NewAccessor(db.Connect(), logger), db, logger
}

// WriteKey persists value under key, failing the test on error.
func WriteKey(t *testing.T, acc *core.Accessor, key string, value interface{}) {
	t.Helper()
	if err := acc.Write(key, value); err != nil {
		t.Fatalf("WriteKey(%s) failed: %v", key, err)
	}
}

// ReadRaw returns the raw stored bytes for key, failing the test on error.
func ReadRaw(t *testing.T, acc *core.Accessor, key string) []byte {
	t.Helper()
	raw, err := acc.Store().Get(key)
	if err != nil {
		t.Fatalf("ReadRaw(%s) failed: %v", key, err)
	}
	return raw
}

// SetRaw stores raw bytes under key, bypassing serialization; handy for
// planting corrupt values.
func SetRaw(t *testing.T, acc *core.Accessor, key string, raw []byte) {
	t.Helper()
	if err := acc.Store().Set(key, raw); err != nil {
		t.Fatalf("SetRaw(%s) failed: %v", key, err)
	}
}
