// Package sqlmap drives the sqlmap CLI, one URL at a time or one batch file
// per detached process.
package sqlmap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/sources/common"
)

const (
	toolName    = "sqlmap"
	installHint = "pip install sqlmap (or apt install sqlmap)"
)

// DefaultArgs are appended to every invocation unless overridden.
var DefaultArgs = []string{"--batch", "--dbs"}

// Config configures the scanner.
type Config struct {
	Tool ports.ToolConfig

	// Args replace DefaultArgs when non-nil.
	Args []string

	// LogDir receives one batch_N.log per batch process.
	LogDir string

	// Output receives sequential scan output. Defaults to os.Stdout.
	Output io.Writer
}

// Scanner implements ports.Scanner on top of the sqlmap binary.
type Scanner struct {
	*common.BaseCLITool

	args   []string
	logDir string
	out    io.Writer
}

var (
	_ ports.Scanner     = (*Scanner)(nil)
	_ ports.Initializer = (*Scanner)(nil)
)

func New(logger logx.Logger, cfg Config) *Scanner {
	if cfg.Tool.ExecPath == "" {
		cfg.Tool.ExecPath = toolName
	}
	args := cfg.Args
	if args == nil {
		args = DefaultArgs
	}
	args = append(append([]string(nil), args...), cfg.Tool.Args...)
	if cfg.LogDir == "" {
		cfg.LogDir = "."
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	return &Scanner{
		BaseCLITool: common.NewBaseCLITool(logger, common.BaseCLIConfig{
			ToolName: toolName,
			ExecPath: cfg.Tool.ExecPath,
			Timeout:  cfg.Tool.Timeout,
		}),
		args:   args,
		logDir: cfg.LogDir,
		out:    cfg.Output,
	}
}

func (s *Scanner) Initialize() error {
	return s.DefaultInitialize(installHint)
}

// ScanURL runs `sqlmap -u <url> <args>` in the foreground.
func (s *Scanner) ScanURL(ctx context.Context, url string) error {
	s.Logger().Info("testing url", "url", url)
	return s.RunAttached(ctx, s.urlArgs(url), s.out)
}

// StartBatch spawns `sqlmap -m <locator> <args>` with output redirected to
// batch_N.log in the log dir. The process is not tied to any context and
// outlives this one.
func (s *Scanner) StartBatch(batch domain.Batch, locator string) (ports.RunningScan, error) {
	logPath := filepath.Join(s.logDir, fmt.Sprintf("%s.log", batch.Name))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Mark(fmt.Errorf("open batch log %s: %w", logPath, err), errors.ErrStorage)
	}

	cmd, err := s.Spawn(s.batchArgs(locator), logFile)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	s.Logger().Info("batch scan started",
		"batch", batch.Name,
		"urls", len(batch.URLs),
		"pid", cmd.Process.Pid,
		"log", logPath,
	)

	return &runningScan{name: batch.Name, cmd: cmd, log: logFile, logPath: logPath}, nil
}

func (s *Scanner) urlArgs(url string) []string {
	return append([]string{"-u", url}, s.args...)
}

func (s *Scanner) batchArgs(locator string) []string {
	return append([]string{"-m", locator}, s.args...)
}

type runningScan struct {
	name    domain.ArtifactName
	cmd     *exec.Cmd
	log     *os.File
	logPath string

	once sync.Once
	err  error
}

func (r *runningScan) PID() int        { return r.cmd.Process.Pid }
func (r *runningScan) LogPath() string { return r.logPath }

// Wait may be called more than once; later calls return the first result.
func (r *runningScan) Wait() error {
	r.once.Do(func() {
		err := r.cmd.Wait()
		r.log.Close()
		if err != nil {
			r.err = errors.Mark(fmt.Errorf("sqlmap %s: %w", r.name, err), errors.ErrToolFailed)
		}
	})
	return r.err
}
