// Package waybackurls drives tomnomnom's waybackurls to pull archived
// endpoints for the live hosts.
package waybackurls

import (
	"context"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
	"sqlihunt/internal/sources/common"
)

const (
	toolName    = "waybackurls"
	installHint = "go install github.com/tomnomnom/waybackurls@latest"
)

// Waybackurls queries web archives for every live host.
type Waybackurls struct {
	*common.BaseCLITool

	extraArgs []string
	withDates bool
	noSubs    bool
	scoped    bool
}

var (
	_ ports.Enumerator  = (*Waybackurls)(nil)
	_ ports.Initializer = (*Waybackurls)(nil)
)

// New builds the adapter. Recognized Extra keys: "with_dates" (bool),
// "no_subs" (bool), "scope" (bool, drop lines on hosts outside the target).
func New(logger logx.Logger, cfg ports.ToolConfig) *Waybackurls {
	return &Waybackurls{
		BaseCLITool: common.NewBaseCLITool(logger, common.BaseCLIConfig{
			ToolName: toolName,
			ExecPath: cfg.ExecPath,
			Timeout:  cfg.Timeout,
		}),
		extraArgs: cfg.Args,
		withDates: registry.GetBoolConfig(cfg.Extra, "with_dates", false),
		noSubs:    registry.GetBoolConfig(cfg.Extra, "no_subs", false),
		scoped:    registry.GetBoolConfig(cfg.Extra, "scope", false),
	}
}

func (w *Waybackurls) Initialize() error {
	return w.DefaultInitialize(installHint)
}

// Run feeds the hosts behind the live URLs in input to waybackurls.
// Archive lines with a -dates prefix are reduced to the URL.
func (w *Waybackurls) Run(ctx context.Context, target domain.Target, input []string) ([]string, error) {
	hosts := common.HostsFromURLs(input)
	if len(hosts) == 0 {
		w.Logger().Info("no hosts to look up", "target", target.Root)
		return nil, nil
	}

	w.Logger().Info("fetching archived urls", "target", target.Root, "hosts", len(hosts))

	collector := common.NewURLCollector(target, w.scoped)
	_, err := w.ExecuteCLI(ctx, w.buildArgs(), common.StdinLines(hosts), collector)

	urls := collector.URLs()
	w.Logger().Info("waybackurls finished", "endpoints", len(urls), "out_of_scope", collector.Dropped())
	return urls, err
}

func (w *Waybackurls) buildArgs() []string {
	var args []string
	if w.withDates {
		args = append(args, "-dates")
	}
	if w.noSubs {
		args = append(args, "-no-subs")
	}
	return append(args, w.extraArgs...)
}
