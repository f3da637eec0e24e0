package subfinder

import (
	"context"
	"strconv"
	"strings"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
	"sqlihunt/internal/sources/common"
)

const (
	toolName    = "subfinder"
	installHint = "go install -v github.com/projectdiscovery/subfinder/v2/cmd/subfinder@latest"
)

// Subfinder enumerates subdomains of the target root.
type Subfinder struct {
	*common.BaseCLITool

	extraArgs []string
	allSrc    bool     // -all
	sources   []string // -s
	threads   int      // -t, zero keeps subfinder's default
}

var (
	_ ports.Enumerator  = (*Subfinder)(nil)
	_ ports.Initializer = (*Subfinder)(nil)
)

// New builds the adapter. Recognized Extra keys: "all" (bool),
// "sources" ([]string), "threads" (int).
func New(logger logx.Logger, cfg ports.ToolConfig) *Subfinder {
	return &Subfinder{
		BaseCLITool: common.NewBaseCLITool(logger, common.BaseCLIConfig{
			ToolName: toolName,
			ExecPath: cfg.ExecPath,
			Timeout:  cfg.Timeout,
		}),
		extraArgs: cfg.Args,
		allSrc:    registry.GetBoolConfig(cfg.Extra, "all", false),
		sources:   registry.GetSliceConfig(cfg.Extra, "sources", nil),
		threads:   registry.GetIntConfig(cfg.Extra, "threads", 0),
	}
}

func (s *Subfinder) Initialize() error {
	return s.DefaultInitialize(installHint)
}

// Run ignores input; subfinder always starts from the target root.
func (s *Subfinder) Run(ctx context.Context, target domain.Target, _ []string) ([]string, error) {
	s.Logger().Info("starting subfinder", "target", target.Root)

	parser := NewParser(s.Logger(), target)
	_, err := s.ExecuteCLI(ctx, s.buildArgs(target), nil, parser)

	hosts := parser.Hosts()
	s.Logger().Info("subfinder finished", "subdomains", len(hosts))
	return hosts, err
}

func (s *Subfinder) buildArgs(target domain.Target) []string {
	args := []string{
		"-d", target.Root,
		"-oJ",
		"-silent",
		"-nc",
	}
	if s.allSrc {
		args = append(args, "-all")
	}
	if len(s.sources) > 0 {
		args = append(args, "-s", strings.Join(s.sources, ","))
	}
	if s.threads > 0 {
		args = append(args, "-t", strconv.Itoa(s.threads))
	}
	return append(args, s.extraArgs...)
}
