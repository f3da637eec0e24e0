package subfinder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
	"sqlihunt/internal/testutil"
)

// fakeBinary writes an executable shell script standing in for subfinder.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subfinder")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755)
	testutil.AssertNoError(t, err, "write fake binary")
	return path
}

func TestSubfinder_BuildArgs(t *testing.T) {
	target := domain.Target{Root: "example.com"}

	s := New(logx.Discard(), ports.ToolConfig{ExecPath: "subfinder"})
	testutil.AssertEqual(t, s.buildArgs(target), []string{"-d", "example.com", "-oJ", "-silent", "-nc"}, "defaults")

	s = New(logx.Discard(), ports.ToolConfig{
		ExecPath: "subfinder",
		Args:     []string{"-recursive"},
		Extra: map[string]interface{}{
			"all":     true,
			"sources": []interface{}{"crtsh", "anubis"},
			"threads": 20,
		},
	})
	testutil.AssertEqual(t, s.buildArgs(target), []string{
		"-d", "example.com", "-oJ", "-silent", "-nc",
		"-all", "-s", "crtsh,anubis", "-t", "20", "-recursive",
	}, "extras")
}

func TestSubfinder_Run(t *testing.T) {
	bin := fakeBinary(t, `
echo '{"host":"www.example.com","source":"crtsh"}'
echo '{"host":"*.example.com","source":"crtsh"}'
echo '{"host":"api.example.com","source":["anubis"]}'
echo '{"host":"evil.com","source":"crtsh"}'
`)
	s := New(logx.Discard(), ports.ToolConfig{ExecPath: bin})

	hosts, err := s.Run(context.Background(), domain.Target{Root: "example.com"}, nil)
	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, hosts, []string{"www.example.com", "api.example.com"}, "hosts")
}

func TestSubfinder_RunFailureKeepsPartialOutput(t *testing.T) {
	bin := fakeBinary(t, `
echo '{"host":"www.example.com"}'
exit 2
`)
	s := New(logx.Discard(), ports.ToolConfig{ExecPath: bin})

	hosts, err := s.Run(context.Background(), domain.Target{Root: "example.com"}, nil)
	testutil.AssertTrue(t, errors.IsToolFailed(err), "exit status reported")
	testutil.AssertEqual(t, hosts, []string{"www.example.com"}, "partial hosts")
}

func TestSubfinder_Initialize(t *testing.T) {
	s := New(logx.Discard(), ports.ToolConfig{ExecPath: "definitely-not-subfinder"})
	err := s.Initialize()
	testutil.AssertTrue(t, errors.IsToolNotFound(err), "missing binary")
	testutil.AssertContains(t, err.Error(), "projectdiscovery/subfinder", "install hint")
}

func TestSubfinder_Registered(t *testing.T) {
	meta, ok := registry.Global().Metadata("subfinder")
	testutil.AssertTrue(t, ok, "registered on import")
	testutil.AssertEqual(t, meta.Output, domain.ArtifactSubdomains, "output artifact")
	testutil.AssertFalse(t, meta.Optional, "required stage")
}
