package installer

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/workerpool"
)

// Options configures a Manager.
type Options struct {
	Config     Config
	InstallDir string // overrides Config.InstallDirectory when set
	Runner     Runner
	Workers    int
	Logger     logx.Logger
}

// Manager checks and installs the external binaries in a Config.
type Manager struct {
	cfg        Config
	installDir string
	runner     Runner
	workers    int
	logger     logx.Logger
}

// NewManager resolves the install directory and applies defaults.
func NewManager(opts Options) (*Manager, error) {
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	dir := opts.InstallDir
	if dir == "" {
		dir = opts.Config.InstallDirectory
	}
	dir, err := ExpandInstallDir(dir)
	if err != nil {
		return nil, err
	}
	return &Manager{
		cfg:        opts.Config,
		installDir: dir,
		runner:     opts.Runner,
		workers:    opts.Workers,
		logger:     opts.Logger.With("component", "installer"),
	}, nil
}

// InstallDir is where "go install" places binaries.
func (m *Manager) InstallDir() string {
	return m.installDir
}

// Check probes every tool concurrently and reports results in input order.
func (m *Manager) Check(ctx context.Context, tools []Tool) []Result {
	return m.runAll(ctx, tools, func(ctx context.Context, t Tool) Result {
		return m.check(ctx, t)
	})
}

// Install installs every tool that is not already usable. With force set,
// installed tools are reinstalled.
func (m *Manager) Install(ctx context.Context, tools []Tool, force bool) []Result {
	if needsGo(tools) {
		if err := m.checkGo(ctx); err != nil {
			out := make([]Result, len(tools))
			for i, t := range tools {
				out[i] = Result{Tool: t, Status: StatusFailed, Err: err}
				if t.Method != MethodGo {
					out[i] = m.install(ctx, t, force)
				}
			}
			return out
		}
	}
	return m.runAll(ctx, tools, func(ctx context.Context, t Tool) Result {
		return m.install(ctx, t, force)
	})
}

func (m *Manager) check(ctx context.Context, t Tool) Result {
	start := time.Now()
	res := Result{Tool: t, Status: StatusMissing}
	defer func() { res.Duration = time.Since(start) }()

	path, err := m.runner.LookPath(t.Name)
	if err != nil {
		candidate := filepath.Join(m.installDir, t.Name)
		if p, lerr := m.runner.LookPath(candidate); lerr == nil {
			path = p
		} else {
			return res
		}
	}
	res.Path = path

	if len(t.HealthCheck.Args) == 0 {
		res.Status = StatusInstalled
		return res
	}
	out, err := m.runner.Run(ctx, nil, path, t.HealthCheck.Args...)
	text := string(out)
	// Several tools print their banner and exit non-zero on -version.
	if err != nil && text == "" {
		res.Status = StatusBroken
		res.Err = errors.Mark(errors.Wrapf(err, "%s health check", t.Name), errors.ErrToolFailed)
		return res
	}
	if want := t.HealthCheck.ExpectedContains; want != "" && !strings.Contains(strings.ToLower(text), strings.ToLower(want)) {
		res.Status = StatusBroken
		res.Err = errors.Wrapf(errors.ErrToolFailed, "%s health check output lacks %q", t.Name, want)
		return res
	}
	res.Status = StatusInstalled
	res.Version = ExtractVersion(text)
	return res
}

func (m *Manager) install(ctx context.Context, t Tool, force bool) Result {
	if !force {
		if res := m.check(ctx, t); res.OK() {
			return res
		}
	}

	start := time.Now()
	m.logger.Info("installing tool", "tool", t.Name, "method", string(t.Method), "package", t.Package)

	name, args, env := m.command(t)
	out, err := m.runner.Run(ctx, env, name, args...)
	if err != nil {
		return Result{
			Tool:     t,
			Status:   StatusFailed,
			Err:      errors.Mark(errors.Wrapf(err, "%s %s: %s", name, strings.Join(args, " "), lastLine(out)), errors.ErrToolFailed),
			Duration: time.Since(start),
		}
	}

	res := m.check(ctx, t)
	res.Duration = time.Since(start)
	if res.OK() {
		res.Status = StatusDone
	} else if res.Err == nil {
		res.Status = StatusFailed
		res.Err = errors.Wrapf(errors.ErrToolNotFound, "%s installed but not found in PATH or %s", t.Name, m.installDir)
	}
	return res
}

// command builds the install invocation for t.
func (m *Manager) command(t Tool) (string, []string, []string) {
	version := t.Version
	if version == "" {
		version = "latest"
	}
	switch t.Method {
	case MethodPip:
		spec := t.Package
		if t.Version != "" {
			spec += "==" + t.Version
		}
		return "python3", []string{"-m", "pip", "install", "--user", "--upgrade", spec}, nil
	default:
		var env []string
		if m.installDir != "" {
			env = []string{"GOBIN=" + m.installDir}
		}
		return "go", []string{"install", "-v", t.Package + "@" + version}, env
	}
}

func (m *Manager) checkGo(ctx context.Context) error {
	v, err := GoVersion(ctx, m.runner)
	if err != nil {
		return err
	}
	if want := m.cfg.Go.MinVersion; want != "" && CompareVersions(v, want) < 0 {
		return errors.Wrapf(errors.ErrToolFailed, "go %s is older than required %s", v, want)
	}
	m.logger.Debug("go toolchain", "version", v)
	return nil
}

type toolTask struct {
	tool Tool
	fn   func(context.Context, Tool) Result
	out  *Result
}

func (t *toolTask) Name() string { return t.tool.Name }

func (t *toolTask) Execute(ctx context.Context) error {
	*t.out = t.fn(ctx, t.tool)
	return t.out.Err
}

func (m *Manager) runAll(ctx context.Context, tools []Tool, fn func(context.Context, Tool) Result) []Result {
	results := make([]Result, len(tools))
	tasks := make([]workerpool.Task, len(tools))
	for i, t := range tools {
		tasks[i] = &toolTask{tool: t, fn: fn, out: &results[i]}
	}

	group, err := workerpool.Launch(ctx, tasks, workerpool.Config{Workers: m.workers, Logger: m.logger})
	if err != nil {
		for i, t := range tools {
			results[i] = Result{Tool: t, Status: StatusFailed, Err: err}
		}
		return results
	}
	group.Wait()
	return results
}

func needsGo(tools []Tool) bool {
	for _, t := range tools {
		if t.Method == MethodGo {
			return true
		}
	}
	return false
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return lines[len(lines)-1]
}
