package extract

import (
	"fmt"
	"log/slog"
)

// Sink accumulates the human-readable cascade log. It is created per cascade
// run and passed into every stage, so each stage's logging is a function of
// its inputs plus the sink rather than ambient state. The accumulated lines
// are the primary operability surface: they are returned to the caller even
// on failure and must suffice to diagnose a run without re-running it.
type Sink struct {
	lines  []string
	logger *slog.Logger
}

func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger}
}

// Logf appends one line to the cascade log and mirrors it to slog.
func (s *Sink) Logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	s.lines = append(s.lines, line)
	s.logger.Info("cascade.log", "line", line)
}

// Warnf appends a line and mirrors it at warning level.
func (s *Sink) Warnf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	s.lines = append(s.lines, line)
	s.logger.Warn("cascade.log", "line", line)
}

// Lines returns the accumulated log.
func (s *Sink) Lines() []string { return s.lines }
