package installer

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"
	"sync"
	"testing"

	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/testutil"
)

type fakeRunner struct {
	mu        sync.Mutex
	paths     map[string]string
	outputs   map[string]string
	failing   map[string]bool
	goVersion string
	runs      []string
	envs      map[string][]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		paths:     map[string]string{"go": "/usr/bin/go", "python3": "/usr/bin/python3"},
		outputs:   map[string]string{},
		failing:   map[string]bool{},
		goVersion: "go version go1.24.4 linux/amd64",
		envs:      map[string][]string{},
	}
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.paths[path.Base(name)]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeRunner) Run(_ context.Context, env []string, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	line := strings.TrimSpace(path.Base(name) + " " + strings.Join(args, " "))
	f.runs = append(f.runs, line)

	switch {
	case line == "go version":
		return []byte(f.goVersion), nil
	case strings.HasPrefix(line, "go install"):
		pkg := args[len(args)-1]
		tool := path.Base(pkg[:strings.LastIndex(pkg, "@")])
		f.envs[tool] = env
		if f.failing[tool] {
			return []byte("go: module not found"), errors.New("exit status 1")
		}
		f.paths[tool] = "/home/u/go/bin/" + tool
		return nil, nil
	case strings.HasPrefix(line, "python3 -m pip install"):
		tool := args[len(args)-1]
		if f.failing[tool] {
			return []byte("ERROR: no matching distribution"), errors.New("exit status 1")
		}
		f.paths[tool] = "/home/u/.local/bin/" + tool
		return nil, nil
	}
	if out, ok := f.outputs[path.Base(name)]; ok {
		return []byte(out), nil
	}
	return nil, errors.New("exit status 2")
}

func (f *fakeRunner) ran(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.runs {
		if strings.HasPrefix(r, prefix) {
			return true
		}
	}
	return false
}

func newTestManager(t *testing.T, cfg Config, r Runner) *Manager {
	t.Helper()
	m, err := NewManager(Options{Config: cfg, InstallDir: "/home/u/go/bin", Runner: r, Logger: logx.NewSilent()})
	testutil.AssertNoError(t, err, "NewManager")
	return m
}

func findResult(t *testing.T, results []Result, name string) Result {
	t.Helper()
	for _, r := range results {
		if r.Tool.Name == name {
			return r
		}
	}
	t.Fatalf("no result for %s", name)
	return Result{}
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	testutil.AssertNoError(t, err, "DefaultConfig")
	testutil.AssertLen(t, cfg.Tools, 5, "tool count")

	names := make([]string, 0, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		names = append(names, tool.Name)
	}
	testutil.AssertEqual(t, names, []string{"subfinder", "httpx", "katana", "waybackurls", "sqlmap"}, "tool order")

	sqlmap, err := cfg.Select([]string{"sqlmap"})
	testutil.AssertNoError(t, err, "Select sqlmap")
	testutil.AssertEqual(t, sqlmap[0].Method, MethodPip, "sqlmap method")

	wayback, _ := cfg.Select([]string{"waybackurls"})
	testutil.AssertFalse(t, wayback[0].Required, "waybackurls should be optional")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "tools:\n  - method: go\n    package: x\n"},
		{"unknown method", "tools:\n  - name: a\n    method: brew\n    package: a\n"},
		{"missing package", "tools:\n  - name: a\n    method: go\n"},
		{"duplicate", "tools:\n  - {name: a, method: go, package: a}\n  - {name: a, method: pip, package: a}\n"},
		{"bad yaml", "tools: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tt.yaml))
			testutil.AssertError(t, err, "parseConfig")
		})
	}
}

func TestSelect(t *testing.T) {
	cfg, _ := DefaultConfig()

	tools, err := cfg.Select([]string{"sqlmap", "httpx"})
	testutil.AssertNoError(t, err, "Select")
	testutil.AssertEqual(t, tools[0].Name, "httpx", "config order is kept")
	testutil.AssertEqual(t, tools[1].Name, "sqlmap", "config order is kept")

	_, err = cfg.Select([]string{"nmap"})
	testutil.AssertError(t, err, "unknown tool")
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.21", "1.21", 0},
		{"1.24.4", "1.21", 1},
		{"1.20.9", "1.21", -1},
		{"v1.2", "1.2.0", 0},
		{"1.22rc1", "1.22", 0},
		{"2", "1.99", 1},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, CompareVersions(tt.a, tt.b), tt.want, tt.a+" vs "+tt.b)
	}
}

func TestExtractVersion(t *testing.T) {
	testutil.AssertEqual(t, ExtractVersion("[INF] Current Version: v2.6.6"), "2.6.6", "projectdiscovery banner")
	testutil.AssertEqual(t, ExtractVersion("1.8.4#stable"), "1.8.4", "sqlmap")
	testutil.AssertEqual(t, ExtractVersion("no digits"), "", "no version")
}

func TestInPath(t *testing.T) {
	testutil.AssertTrue(t, InPath("/opt/bin", "/usr/bin:/opt/bin"), "listed dir")
	testutil.AssertFalse(t, InPath("/opt/bin", "/usr/bin"), "unlisted dir")
}

func TestManagerCheck(t *testing.T) {
	cfg, _ := DefaultConfig()
	r := newFakeRunner()
	r.paths["subfinder"] = "/usr/local/bin/subfinder"
	r.outputs["subfinder"] = "[INF] subfinder Current Version: v2.6.6"
	r.paths["httpx"] = "/usr/local/bin/httpx"
	r.outputs["httpx"] = "HTTPX Current Version: v1.6.0"
	r.paths["sqlmap"] = "/usr/bin/sqlmap"
	// sqlmap exits non-zero only when output is empty
	r.paths["katana"] = "/usr/local/bin/katana"
	r.outputs["katana"] = "usage"

	m := newTestManager(t, cfg, r)
	results := m.Check(context.Background(), cfg.Tools)
	testutil.AssertLen(t, results, 5, "results")

	sub := findResult(t, results, "subfinder")
	testutil.AssertEqual(t, sub.Status, StatusInstalled, "subfinder status")
	testutil.AssertEqual(t, sub.Version, "2.6.6", "subfinder version")

	testutil.AssertEqual(t, findResult(t, results, "httpx").Status, StatusInstalled, "httpx matches case-insensitively")
	testutil.AssertEqual(t, findResult(t, results, "katana").Status, StatusBroken, "katana output lacks name")
	testutil.AssertEqual(t, findResult(t, results, "sqlmap").Status, StatusBroken, "sqlmap health check failed")
	testutil.AssertEqual(t, findResult(t, results, "waybackurls").Status, StatusMissing, "waybackurls")

	testutil.AssertFalse(t, r.ran("go install"), "check must not install")
	testutil.AssertEqual(t, Missing(results), 2, "katana and sqlmap are required and unusable")
}

func TestManagerInstall(t *testing.T) {
	cfg, _ := DefaultConfig()
	r := newFakeRunner()
	r.outputs["subfinder"] = "subfinder v2.6.6"
	r.outputs["httpx"] = "httpx v1.6.0"
	r.outputs["katana"] = "katana v1.1.0"
	r.outputs["sqlmap"] = "1.8.4#stable"
	r.paths["httpx"] = "/usr/local/bin/httpx"

	m := newTestManager(t, cfg, r)
	results := m.Install(context.Background(), cfg.Tools, false)

	testutil.AssertEqual(t, findResult(t, results, "httpx").Status, StatusInstalled, "present tool is left alone")
	testutil.AssertFalse(t, r.ran("go install -v github.com/projectdiscovery/httpx"), "httpx reinstalled without force")

	sub := findResult(t, results, "subfinder")
	testutil.AssertEqual(t, sub.Status, StatusDone, "subfinder installed")
	testutil.AssertTrue(t, r.ran("go install -v github.com/projectdiscovery/subfinder/v2/cmd/subfinder@latest"), "go install invoked")
	testutil.AssertEqual(t, r.envs["subfinder"], []string{"GOBIN=/home/u/go/bin"}, "GOBIN set")

	testutil.AssertEqual(t, findResult(t, results, "sqlmap").Status, StatusDone, "sqlmap installed")
	testutil.AssertTrue(t, r.ran("python3 -m pip install --user --upgrade sqlmap"), "pip invoked")
	testutil.AssertEqual(t, Missing(results), 0, "nothing missing")
}

func TestManagerInstallForce(t *testing.T) {
	cfg, _ := DefaultConfig()
	tools, _ := cfg.Select([]string{"waybackurls"})
	r := newFakeRunner()
	r.paths["waybackurls"] = "/usr/local/bin/waybackurls"

	m := newTestManager(t, cfg, r)
	results := m.Install(context.Background(), tools, true)
	testutil.AssertEqual(t, results[0].Status, StatusDone, "forced reinstall")
	testutil.AssertTrue(t, r.ran("go install -v github.com/tomnomnom/waybackurls@latest"), "go install invoked")
}

func TestManagerInstallFailure(t *testing.T) {
	cfg, _ := DefaultConfig()
	tools, _ := cfg.Select([]string{"katana"})
	r := newFakeRunner()
	r.failing["katana"] = true

	m := newTestManager(t, cfg, r)
	results := m.Install(context.Background(), tools, false)
	testutil.AssertEqual(t, results[0].Status, StatusFailed, "status")
	testutil.AssertContains(t, results[0].Err.Error(), "module not found", "last output line in error")
}

func TestManagerInstallOldGo(t *testing.T) {
	cfg, _ := DefaultConfig()
	tools, _ := cfg.Select([]string{"subfinder", "sqlmap"})
	r := newFakeRunner()
	r.goVersion = "go version go1.19.2 linux/amd64"
	r.outputs["sqlmap"] = "1.8.4#stable"

	m := newTestManager(t, cfg, r)
	results := m.Install(context.Background(), tools, false)
	testutil.AssertEqual(t, findResult(t, results, "subfinder").Status, StatusFailed, "go tool blocked by old toolchain")
	testutil.AssertContains(t, findResult(t, results, "subfinder").Err.Error(), "older than required", "error text")
	testutil.AssertEqual(t, findResult(t, results, "sqlmap").Status, StatusDone, "pip tool still installed")
	testutil.AssertFalse(t, r.ran("go install"), "no go install attempted")
}

func TestReportQuiet(t *testing.T) {
	results := []Result{
		{Tool: Tool{Name: "httpx", Required: true}, Status: StatusInstalled, Path: "/usr/bin/httpx"},
		{Tool: Tool{Name: "katana", Required: true, Description: "Endpoint crawling"}, Status: StatusMissing},
	}
	var buf bytes.Buffer
	Report(&buf, "check", results, true)
	testutil.AssertEqual(t, buf.String(), "katana: Endpoint crawling\n", "quiet output")
}
