package common

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/testutil"
)

// mockHandler implements OutputHandler for testing
type mockHandler struct {
	lines       []string
	mu          sync.Mutex
	processErr  error
	finalizeErr error
	finalized   bool
}

func (m *mockHandler) ProcessLine(line []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, string(line))
	return m.processErr
}

func (m *mockHandler) Finalize() error {
	m.mu.Lock()
	m.finalized = true
	m.mu.Unlock()
	return m.finalizeErr
}

func (m *mockHandler) getLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.lines))
	copy(result, m.lines)
	return result
}

func newTool(execPath string, timeout time.Duration) *BaseCLITool {
	return NewBaseCLITool(logx.Discard(), BaseCLIConfig{
		ToolName: "test",
		ExecPath: execPath,
		Timeout:  timeout,
	})
}

func TestBaseCLITool_ExecuteCLI_Success(t *testing.T) {
	base := newTool("echo", 5*time.Second)
	defer base.Close()

	handler := &mockHandler{}
	stderr, err := base.ExecuteCLI(context.Background(), []string{"hello\nworld"}, nil, handler)

	testutil.AssertNoError(t, err, "ExecuteCLI")
	testutil.AssertEqual(t, handler.getLines(), []string{"hello", "world"}, "stdout lines")
	testutil.AssertTrue(t, handler.finalized, "handler finalized")
	testutil.AssertEqual(t, stderr, "", "no stderr")
}

func TestBaseCLITool_ExecuteCLI_Stdin(t *testing.T) {
	base := newTool("cat", 5*time.Second)

	collector := NewLineCollector()
	_, err := base.ExecuteCLI(context.Background(), nil, StdinLines([]string{"a.example.com", "b.example.com"}), collector)

	testutil.AssertNoError(t, err, "ExecuteCLI")
	testutil.AssertEqual(t, collector.Lines(), []string{"a.example.com", "b.example.com"}, "stdin echoed back")
}

func TestBaseCLITool_ExecuteCLI_StderrCapture(t *testing.T) {
	base := newTool("sh", 5*time.Second)

	handler := &mockHandler{}
	stderr, err := base.ExecuteCLI(context.Background(), []string{"-c", "echo stdout; echo stderr >&2"}, nil, handler)

	testutil.AssertNoError(t, err, "ExecuteCLI")
	testutil.AssertContains(t, stderr, "stderr", "stderr captured")
	lines := handler.getLines()
	testutil.AssertLen(t, lines, 1, "one stdout line")
	testutil.AssertEqual(t, lines[0], "stdout", "stdout line")
}

func TestBaseCLITool_ExecuteCLI_PartialResults(t *testing.T) {
	base := newTool("sh", 5*time.Second)

	handler := &mockHandler{}
	_, err := base.ExecuteCLI(context.Background(), []string{"-c", "echo output; exit 1"}, nil, handler)

	testutil.AssertTrue(t, errors.IsToolFailed(err), "non-zero exit is a tool failure")
	testutil.AssertEqual(t, handler.getLines(), []string{"output"}, "partial output kept")
}

func TestBaseCLITool_ExecuteCLI_HandlerErrorsDoNotStop(t *testing.T) {
	base := newTool("sh", 5*time.Second)

	handler := &mockHandler{processErr: errors.New("bad line"), finalizeErr: errors.New("bad finalize")}
	_, err := base.ExecuteCLI(context.Background(), []string{"-c", "echo one; echo two"}, nil, handler)

	testutil.AssertNoError(t, err, "handler errors are not fatal")
	testutil.AssertLen(t, handler.getLines(), 2, "every line delivered")
}

func TestBaseCLITool_ExecuteCLI_Timeout(t *testing.T) {
	base := newTool("sleep", 100*time.Millisecond)

	start := time.Now()
	_, err := base.ExecuteCLI(context.Background(), []string{"5"}, nil, &mockHandler{})

	testutil.AssertTrue(t, errors.IsToolFailed(err), "timeout is a tool failure")
	testutil.AssertContains(t, err.Error(), "deadline exceeded", "reason")
	testutil.AssertTrue(t, time.Since(start) < 3*time.Second, "process was killed")
}

func TestBaseCLITool_ExecuteCLI_ContextCancellation(t *testing.T) {
	base := newTool("sleep", 0)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := base.ExecuteCLI(ctx, []string{"5"}, nil, &mockHandler{})
	testutil.AssertError(t, err, "cancelled run fails")
}

func TestBaseCLITool_ExecuteCLI_CommandNotFound(t *testing.T) {
	base := newTool("nonexistent-binary-xyz", 5*time.Second)

	_, err := base.ExecuteCLI(context.Background(), nil, nil, &mockHandler{})
	testutil.AssertTrue(t, errors.IsToolNotFound(err), "missing binary")
}

func TestBaseCLITool_RunAttached(t *testing.T) {
	base := newTool("sh", 5*time.Second)

	var out bytes.Buffer
	err := base.RunAttached(context.Background(), []string{"-c", "echo out; echo err >&2"}, &out)
	testutil.AssertNoError(t, err, "RunAttached")
	testutil.AssertContains(t, out.String(), "out", "stdout copied")
	testutil.AssertContains(t, out.String(), "err", "stderr copied")

	err = base.RunAttached(context.Background(), []string{"-c", "exit 3"}, &out)
	testutil.AssertTrue(t, errors.IsToolFailed(err), "exit code surfaces")
}

func TestBaseCLITool_Spawn(t *testing.T) {
	base := newTool("sh", 0)

	var out bytes.Buffer
	cmd, err := base.Spawn([]string{"-c", "echo spawned"}, &out)
	testutil.AssertNoError(t, err, "Spawn")
	testutil.AssertTrue(t, cmd.Process.Pid > 0, "pid assigned")
	testutil.AssertNoError(t, cmd.Wait(), "Wait")
	testutil.AssertEqual(t, strings.TrimSpace(out.String()), "spawned", "output")

	_, err = newTool("nonexistent-binary-xyz", 0).Spawn(nil, &out)
	testutil.AssertTrue(t, errors.IsToolNotFound(err), "missing binary")
}

func TestBaseCLITool_DefaultInitialize(t *testing.T) {
	base := newTool("sh", 0)
	testutil.AssertNoError(t, base.DefaultInitialize("n/a"), "sh is on PATH")
	testutil.AssertTrue(t, strings.HasSuffix(base.ExecPath(), "/sh"), "path resolved")

	missing := newTool("nonexistent-binary-xyz", 0)
	err := missing.DefaultInitialize("go install example.com/x@latest")
	testutil.AssertTrue(t, errors.IsToolNotFound(err), "not found")
	testutil.AssertContains(t, err.Error(), "go install example.com/x@latest", "install hint")
}

func TestBaseCLITool_Close_Idempotency(t *testing.T) {
	base := newTool("echo", 0)
	testutil.AssertNoError(t, base.Close(), "first close")
	testutil.AssertNoError(t, base.Close(), "second close")
}

func TestNewBaseCLITool_DefaultsExecPath(t *testing.T) {
	base := NewBaseCLITool(logx.Discard(), BaseCLIConfig{ToolName: "katana"})
	testutil.AssertEqual(t, base.ExecPath(), "katana", "exec path falls back to tool name")
	testutil.AssertEqual(t, base.Name(), "katana", "name")
}

func TestLineCollector(t *testing.T) {
	c := NewLineCollector()
	for _, l := range []string{"  a ", "", "\t", "b"} {
		c.ProcessLine([]byte(l))
	}
	testutil.AssertEqual(t, c.Lines(), []string{"a", "b"}, "trimmed, blanks skipped")
}

func TestStdinLines(t *testing.T) {
	r := StdinLines(nil)
	testutil.AssertEqual(t, r.Len(), 0, "empty input")

	r = StdinLines([]string{"x", "y"})
	buf := new(strings.Builder)
	r.WriteTo(buf)
	testutil.AssertEqual(t, buf.String(), "x\ny\n", "newline terminated")
}
