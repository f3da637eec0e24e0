// Package common provides the subprocess plumbing shared by every external
// tool the pipeline drives.
package common

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
)

// maxLineSize bounds a single stdout line (crawlers emit very long URLs).
const maxLineSize = 10 * 1024 * 1024

// OutputHandler processes output from CLI tools.
type OutputHandler interface {
	// ProcessLine handles each line of stdout as it arrives.
	// Errors are logged and processing continues.
	ProcessLine(line []byte) error

	// Finalize is called after stdout is drained.
	Finalize() error
}

// BaseCLITool runs one external binary. It handles pipes, the stderr
// drain, optional timeouts and process cleanup.
//
// Usage:
//  1. Embed BaseCLITool in the tool adapter
//  2. Call DefaultInitialize to resolve the binary
//  3. Implement OutputHandler (or use LineCollector)
//  4. Call ExecuteCLI from the adapter's Run
type BaseCLITool struct {
	logger   logx.Logger
	name     string
	execPath string
	timeout  time.Duration // zero means no limit

	mu  sync.Mutex
	cmd *exec.Cmd
}

// BaseCLIConfig contains configuration for BaseCLITool.
type BaseCLIConfig struct {
	ToolName string        // for logs and errors
	ExecPath string        // binary name or path, resolved via LookPath
	Timeout  time.Duration // per-invocation limit, zero for none
}

// NewBaseCLITool creates a new BaseCLITool.
func NewBaseCLITool(logger logx.Logger, cfg BaseCLIConfig) *BaseCLITool {
	if cfg.ExecPath == "" {
		cfg.ExecPath = cfg.ToolName
	}
	return &BaseCLITool{
		logger:   logger.With("tool", cfg.ToolName),
		name:     cfg.ToolName,
		execPath: cfg.ExecPath,
		timeout:  cfg.Timeout,
	}
}

// ExecuteCLI runs the binary with args, feeds stdin (may be nil) and streams
// stdout lines into handler.
//
// Returns:
//   - stderrOutput: captured stderr for warnings/debugging
//   - err: ErrToolNotFound when the binary cannot start, ErrToolFailed on a
//     non-zero exit. Lines already handed to handler stay valid either way.
func (b *BaseCLITool) ExecuteCLI(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	handler OutputHandler,
) (stderrOutput string, err error) {
	startTime := time.Now()

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	b.logger.Info("executing CLI command",
		"exec_path", b.execPath,
		"args", strings.Join(args, " "),
		"timeout", b.timeout.String(),
	)

	cmd := exec.CommandContext(ctx, b.execPath, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", b.startError(err)
	}

	b.mu.Lock()
	b.cmd = cmd
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.cmd = nil
		b.mu.Unlock()
	}()

	b.logger.Debug("subprocess started", "pid", cmd.Process.Pid)

	// Drain stderr in the background so the child never blocks on it.
	var stderrBytes []byte
	var stderrWg sync.WaitGroup
	stderrWg.Add(1)
	go func() {
		defer stderrWg.Done()
		data, readErr := io.ReadAll(stderr)
		if readErr != nil {
			b.logger.Warn("error reading stderr", "error", readErr.Error())
		}
		stderrBytes = data
	}()

	if err := b.ProcessOutput(stdout, handler); err != nil {
		b.logger.Warn("scanner error", "error", err.Error())
	}
	if err := handler.Finalize(); err != nil {
		b.logger.Warn("handler finalization error", "error", err.Error())
	}

	stderrWg.Wait()
	waitErr := cmd.Wait()
	stderrOutput = string(stderrBytes)

	if len(stderrOutput) > 0 {
		b.logger.Debug("subprocess stderr", "output", stderrOutput)
	}

	duration := time.Since(startTime)
	if waitErr != nil {
		b.logger.Warn("subprocess exited with error",
			"error", waitErr.Error(),
			"duration", duration.String(),
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stderrOutput, errors.Mark(fmt.Errorf("%s interrupted: %w", b.name, ctxErr), errors.ErrToolFailed)
		}
		return stderrOutput, errors.Mark(fmt.Errorf("%s exited with error: %w", b.name, waitErr), errors.ErrToolFailed)
	}

	b.logger.Info("CLI command completed successfully", "duration", duration.String())
	return stderrOutput, nil
}

// RunAttached runs the binary with stdout and stderr copied to out. It is
// used for tools whose output is meant for the operator, not for parsing.
func (b *BaseCLITool) RunAttached(ctx context.Context, args []string, out io.Writer) error {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, b.execPath, args...)
	cmd.Stdout = out
	cmd.Stderr = out

	b.logger.Debug("running attached", "exec_path", b.execPath, "args", strings.Join(args, " "))

	if err := cmd.Start(); err != nil {
		return b.startError(err)
	}

	b.mu.Lock()
	b.cmd = cmd
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.cmd = nil
		b.mu.Unlock()
	}()

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Mark(fmt.Errorf("%s interrupted: %w", b.name, ctxErr), errors.ErrToolFailed)
		}
		return errors.Mark(fmt.Errorf("%s exited with error: %w", b.name, err), errors.ErrToolFailed)
	}
	return nil
}

// Spawn starts the binary detached from any context, with stdout and stderr
// sent to out. The caller owns the returned command and must Wait on it.
// The child keeps running if this process exits.
func (b *BaseCLITool) Spawn(args []string, out io.Writer) (*exec.Cmd, error) {
	cmd := exec.Command(b.execPath, args...)
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		return nil, b.startError(err)
	}

	b.logger.Debug("subprocess spawned", "pid", cmd.Process.Pid, "args", strings.Join(args, " "))
	return cmd, nil
}

func (b *BaseCLITool) startError(err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return errors.Mark(fmt.Errorf("%s: %w", b.name, err), errors.ErrToolNotFound)
	}
	return errors.Mark(fmt.Errorf("failed to start %s: %w", b.name, err), errors.ErrToolFailed)
}

// ProcessOutput feeds every line of r into handler.
func (b *BaseCLITool) ProcessOutput(r io.Reader, handler OutputHandler) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	for scanner.Scan() {
		if err := handler.ProcessLine(scanner.Bytes()); err != nil {
			b.logger.Debug("handler rejected line", "error", err.Error())
		}
	}
	return scanner.Err()
}

// Close terminates a running invocation, if any. Safe to call repeatedly.
func (b *BaseCLITool) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cmd != nil && b.cmd.Process != nil {
		proc := b.cmd.Process
		if state := b.cmd.ProcessState; state == nil || !state.Exited() {
			if err := proc.Signal(os.Interrupt); err != nil && err != os.ErrProcessDone {
				b.logger.Warn("SIGINT failed, forcing kill", "error", err.Error())
				if killErr := proc.Kill(); killErr != nil && killErr != os.ErrProcessDone {
					b.logger.Warn("failed to kill process", "error", killErr.Error())
				}
			}
		}
		b.cmd = nil
	}
	return nil
}

// DefaultInitialize resolves the binary on PATH.
func (b *BaseCLITool) DefaultInitialize(installHint string) error {
	b.logger.Debug("initializing CLI tool", "exec_path", b.execPath)

	execPath, err := exec.LookPath(b.execPath)
	if err != nil {
		return errors.Mark(
			fmt.Errorf("%s not found in PATH: %w (install: %s)", b.name, err, installHint),
			errors.ErrToolNotFound,
		)
	}

	b.execPath = execPath
	b.logger.Debug("found binary", "path", execPath)
	return nil
}

// Name returns the tool name.
func (b *BaseCLITool) Name() string {
	return b.name
}

// ExecPath returns the (possibly resolved) executable path.
func (b *BaseCLITool) ExecPath() string {
	return b.execPath
}

// Timeout returns the per-invocation limit.
func (b *BaseCLITool) Timeout() time.Duration {
	return b.timeout
}

// Logger returns the tool-scoped logger.
func (b *BaseCLITool) Logger() logx.Logger {
	return b.logger
}
