package common

import (
	"strings"
	"sync"
)

// LineCollector is an OutputHandler that keeps every non-blank stdout line,
// trimmed, in arrival order.
type LineCollector struct {
	mu    sync.Mutex
	lines []string
}

func NewLineCollector() *LineCollector {
	return &LineCollector{}
}

func (c *LineCollector) ProcessLine(line []byte) error {
	s := strings.TrimSpace(string(line))
	if s == "" {
		return nil
	}
	c.mu.Lock()
	c.lines = append(c.lines, s)
	c.mu.Unlock()
	return nil
}

func (c *LineCollector) Finalize() error { return nil }

// Lines returns a copy of the collected lines.
func (c *LineCollector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// StdinLines joins lines for feeding a tool that reads one item per line.
func StdinLines(lines []string) *strings.Reader {
	if len(lines) == 0 {
		return strings.NewReader("")
	}
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
