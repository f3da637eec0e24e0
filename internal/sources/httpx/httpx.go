// Package httpx drives Project Discovery's httpx CLI to keep only the
// subdomains that answer HTTP(S).
package httpx

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
	toolName    = "httpx"
	installHint = "go install -v github.com/projectdiscovery/httpx/cmd/httpx@latest"
)

// HTTPx probes hosts read from stdin.
type HTTPx struct {
	*common.BaseCLITool

	extraArgs       []string
	threads         int
	matchCodes      []string
	followRedirects bool
}

var (
	_ ports.Enumerator  = (*HTTPx)(nil)
	_ ports.Initializer = (*HTTPx)(nil)
)

// New builds the adapter. Recognized Extra keys: "threads" (int),
// "match_codes" ([]string), "follow_redirects" (bool).
func New(logger logx.Logger, cfg ports.ToolConfig) *HTTPx {
	return &HTTPx{
		BaseCLITool: common.NewBaseCLITool(logger, common.BaseCLIConfig{
			ToolName: toolName,
			ExecPath: cfg.ExecPath,
			Timeout:  cfg.Timeout,
		}),
		extraArgs:       cfg.Args,
		threads:         registry.GetIntConfig(cfg.Extra, "threads", 0),
		matchCodes:      registry.GetSliceConfig(cfg.Extra, "match_codes", nil),
		followRedirects: registry.GetBoolConfig(cfg.Extra, "follow_redirects", false),
	}
}

func (h *HTTPx) Initialize() error {
	return h.DefaultInitialize(installHint)
}

// Run probes every input host. An empty input returns immediately without
// starting the binary.
func (h *HTTPx) Run(ctx context.Context, target domain.Target, input []string) ([]string, error) {
	if len(input) == 0 {
		h.Logger().Info("no hosts to probe", "target", target.Root)
		return nil, nil
	}

	h.Logger().Info("probing hosts", "target", target.Root, "hosts", len(input))

	parser := NewParser(h.Logger())
	_, err := h.ExecuteCLI(ctx, h.buildArgs(), common.StdinLines(input), parser)

	urls := parser.URLs()
	h.Logger().Info("httpx finished", "live", len(urls))
	return urls, err
}

func (h *HTTPx) buildArgs() []string {
	args := []string{"-silent", "-nc", "-json"}
	if h.threads > 0 {
		args = append(args, "-threads", strconv.Itoa(h.threads))
	}
	if len(h.matchCodes) > 0 {
		args = append(args, "-mc", strings.Join(h.matchCodes, ","))
	}
	if h.followRedirects {
		args = append(args, "-fr")
	}
	return append(args, h.extraArgs...)
}
