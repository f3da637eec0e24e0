// Package katana drives Project Discovery's katana crawler over the live
// hosts and keeps the URLs it prints.
package katana

import (
	"context"
	"strconv"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
	"sqlihunt/internal/sources/common"
)

const (
	toolName     = "katana"
	installHint  = "go install github.com/projectdiscovery/katana/cmd/katana@latest"
	DefaultDepth = 3
)

type Katana struct {
	*common.BaseCLITool

	extraArgs   []string
	depth       int
	jsCrawl     bool
	concurrency int
	scoped      bool
}

var (
	_ ports.Enumerator  = (*Katana)(nil)
	_ ports.Initializer = (*Katana)(nil)
)

// New builds the adapter. Recognized Extra keys: "depth" (int, default 3),
// "js_crawl" (bool), "concurrency" (int), "scope" (bool, drop lines on
// hosts outside the target).
func New(logger logx.Logger, cfg ports.ToolConfig) *Katana {
	depth := registry.GetIntConfig(cfg.Extra, "depth", DefaultDepth)
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Katana{
		BaseCLITool: common.NewBaseCLITool(logger, common.BaseCLIConfig{
			ToolName: toolName,
			ExecPath: cfg.ExecPath,
			Timeout:  cfg.Timeout,
		}),
		extraArgs:   cfg.Args,
		depth:       depth,
		jsCrawl:     registry.GetBoolConfig(cfg.Extra, "js_crawl", false),
		concurrency: registry.GetIntConfig(cfg.Extra, "concurrency", 0),
		scoped:      registry.GetBoolConfig(cfg.Extra, "scope", false),
	}
}

func (k *Katana) Initialize() error {
	return k.DefaultInitialize(installHint)
}

// Run crawls every live URL in input.
func (k *Katana) Run(ctx context.Context, target domain.Target, input []string) ([]string, error) {
	if len(input) == 0 {
		k.Logger().Info("no live hosts to crawl", "target", target.Root)
		return nil, nil
	}

	k.Logger().Info("crawling", "target", target.Root, "seeds", len(input), "depth", k.depth)

	collector := common.NewURLCollector(target, k.scoped)
	_, err := k.ExecuteCLI(ctx, k.buildArgs(), common.StdinLines(input), collector)

	urls := collector.URLs()
	k.Logger().Info("katana finished", "endpoints", len(urls), "out_of_scope", collector.Dropped())
	return urls, err
}

func (k *Katana) buildArgs() []string {
	args := []string{"-depth", strconv.Itoa(k.depth), "-silent", "-nc"}
	if k.jsCrawl {
		args = append(args, "-jc")
	}
	if k.concurrency > 0 {
		args = append(args, "-c", strconv.Itoa(k.concurrency))
	}
	return append(args, k.extraArgs...)
}
