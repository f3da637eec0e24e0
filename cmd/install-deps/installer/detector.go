package installer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"sqlihunt/internal/platform/errors"
)

// Runner abstracts process execution so checks can be faked in tests.
type Runner interface {
	LookPath(name string) (string, error)

	// Run executes name with args and extra environment entries and
	// returns combined output.
	Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs real processes.
type ExecRunner struct{}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (ExecRunner) Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd.CombinedOutput()
}

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)

// ExtractVersion returns the first dotted version number in output, or "".
func ExtractVersion(output string) string {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return ""
	}
	return m[1]
}

// GoVersion returns the version of the go binary found by r.
func GoVersion(ctx context.Context, r Runner) (string, error) {
	if _, err := r.LookPath("go"); err != nil {
		return "", errors.Mark(errors.Wrap(err, "go"), errors.ErrToolNotFound)
	}
	out, err := r.Run(ctx, nil, "go", "version")
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "go version"), errors.ErrToolFailed)
	}
	// "go version go1.24.4 linux/amd64"
	fields := strings.Fields(string(out))
	if len(fields) < 3 {
		return "", errors.Errorf("unexpected go version output: %q", strings.TrimSpace(string(out)))
	}
	return strings.TrimPrefix(fields[2], "go"), nil
}

// CompareVersions orders dotted numeric versions: -1, 0 or 1. Missing
// components count as zero and non-numeric suffixes are ignored.
func CompareVersions(a, b string) int {
	pa := versionParts(a)
	pb := versionParts(b)
	for i := 0; i < max(len(pa), len(pb)); i++ {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

func versionParts(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	var parts []int
	for _, p := range strings.Split(v, ".") {
		end := 0
		for end < len(p) && p[end] >= '0' && p[end] <= '9' {
			end++
		}
		n, _ := strconv.Atoi(p[:end])
		parts = append(parts, n)
		if end < len(p) {
			break
		}
	}
	return parts
}

// InPath reports whether dir is one of the PATH entries.
func InPath(dir, pathEnv string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for _, entry := range filepath.SplitList(pathEnv) {
		if e, err := filepath.Abs(entry); err == nil && e == abs {
			return true
		}
	}
	return false
}
