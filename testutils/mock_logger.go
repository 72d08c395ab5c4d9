package testutils

import "github.com/evdnx/papertrader/logger"

// Record is one captured log call.
type Record struct {
	Level   string
	Message string
	Fields  []logger.Field
}

// MockLogger satisfies logger.Logger and keeps every call for
// inspection, newest last.
type MockLogger struct {
	records []Record
}

// NewMockLogger returns a logger that records everything.
func NewMockLogger() *MockLogger { return &MockLogger{} }

func (l *MockLogger) Info(msg string, fields ...logger.Field)  { l.capture("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields ...logger.Field)  { l.capture("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields ...logger.Field) { l.capture("error", msg, fields) }

func (l *MockLogger) capture(level, msg string, fields []logger.Field) {
	l.records = append(l.records, Record{
		Level:   level,
		Message: msg,
		Fields:  append([]logger.Field(nil), fields...),
	})
}

// Has reports whether msg was logged at level.
func (l *MockLogger) Has(level, msg string) bool {
	for _, r := range l.records {
		if r.Level == level && r.Message == msg {
			return true
		}
	}
	return false
}

// LastMessage returns the most recently logged message, or "" when
// nothing was logged.
func (l *MockLogger) LastMessage() string {
	if len(l.records) == 0 {
		return ""
	}
	return l.records[len(l.records)-1].Message
}

// Count returns how many calls were captured at level; an empty level
// counts everything.
func (l *MockLogger) Count(level string) int {
	if level == "" {
		return len(l.records)
	}
	n := 0
	for _, r := range l.records {
		if r.Level == level {
			n++
		}
	}
	return n
}
