// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
)

const envPrefix = "SQLIHUNT_"

// ToolNames are the external binaries the session drives, in pipeline order.
var ToolNames = []string{"subfinder", "httpx", "katana", "waybackurls", "sqlmap"}

// Config is the fully resolved configuration.
// Precedence: defaults < YAML file < SQLIHUNT_* environment < flags.
type Config struct {
	Core   CoreConfig                  `yaml:"core"`
	Prompt PromptConfig                `yaml:"prompt"`
	Scan   ScanConfig                  `yaml:"scan"`
	Output OutputConfig                `yaml:"output"`
	Tools  map[string]ports.ToolConfig `yaml:"tools"`

	// Set by flags only.
	ConfigFile   string `yaml:"-"`
	PrintVersion bool   `yaml:"-"`
	ShowHelp     bool   `yaml:"-"`
}

type CoreConfig struct {
	Target  string `yaml:"target"`
	WorkDir string `yaml:"workdir"`
}

// PromptConfig pre-answers interactive questions. Empty values are asked.
type PromptConfig struct {
	Archive string `yaml:"archive"` // ask|yes|no
	Mode    string `yaml:"mode"`    // prioritized|general|1|2

	// Params replaces the default high-risk list when ParamsSet is true.
	Params    []string `yaml:"params"`
	ParamsSet bool     `yaml:"-"`

	AddParams    []string `yaml:"add_params"`
	RemoveParams []string `yaml:"remove_params"`
}

type ScanConfig struct {
	BatchSize int `yaml:"batch_size"`

	// SqlmapArgs replaces the scanner's default arguments when non-nil.
	SqlmapArgs []string `yaml:"sqlmap_args"`

	// Wait joins batch scans before exiting.
	Wait bool `yaml:"wait"`
}

type OutputConfig struct {
	Quiet    bool   `yaml:"quiet"`
	Format   string `yaml:"format"` // text|json
	LogLevel string `yaml:"log_level"`
	Verbose  bool   `yaml:"verbose"`

	// Report is a directory for the JSON session report, "-" for stdout.
	// Empty writes no report.
	Report string `yaml:"report"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	tools := make(map[string]ports.ToolConfig, len(ToolNames))
	for _, name := range ToolNames {
		tools[name] = ports.DefaultToolConfig(name)
	}
	katana := tools["katana"]
	katana.Extra = map[string]interface{}{"depth": 3}
	tools["katana"] = katana

	return Config{
		Core: CoreConfig{
			WorkDir: ".",
		},
		Prompt: PromptConfig{
			Archive: "ask",
		},
		Scan: ScanConfig{
			BatchSize: 200,
		},
		Output: OutputConfig{
			Format:   "text",
			LogLevel: "warn",
		},
		Tools: tools,
	}
}

// Load resolves the configuration from os.Args and the environment, and
// handles --help and --version (both exit).
func Load(version, commit, date string) (Config, error) {
	cfg, err := LoadArgs(os.Args[1:])
	if err != nil {
		return cfg, err
	}
	if cfg.ShowHelp {
		PrintHelp()
	}
	if cfg.PrintVersion {
		PrintVersion(version, commit, date)
	}
	return cfg, nil
}

// flagValues mirrors every flag. Only flags the user actually set are
// applied on top of file and environment values.
type flagValues struct {
	target      string
	workDir     string
	mode        string
	archive     string
	params      []string
	addParams   []string
	removeParam []string
	batchSize   int
	sqlmapArgs  string
	wait        bool
	katanaDepth int
	toolTimeout time.Duration
	toolPaths   map[string]string
	configFile  string
	quiet       bool
	format      string
	logLevel    string
	report      string
	verbose     bool
	version     bool
	help        bool
}

func newFlagSet(v *flagValues) *pflag.FlagSet {
	fs := pflag.NewFlagSet("sqlihunt", pflag.ContinueOnError)
	fs.Usage = func() {}

	fs.StringVarP(&v.target, "target", "t", "", "Target domain")
	fs.StringVarP(&v.workDir, "workdir", "d", ".", "Directory holding artifacts")
	fs.StringVarP(&v.mode, "mode", "m", "", "Testing mode: prioritized|general (empty = ask)")
	fs.StringVar(&v.archive, "archive", "ask", "Archive lookup with waybackurls: ask|yes|no")
	fs.StringSliceVar(&v.params, "params", nil, "Replace the high-risk parameter list")
	fs.StringSliceVar(&v.addParams, "add-param", nil, "Add high-risk parameters")
	fs.StringSliceVar(&v.removeParam, "remove-param", nil, "Remove high-risk parameters")
	fs.IntVar(&v.batchSize, "batch-size", 200, "URLs per batch and single-pass threshold")
	fs.StringVar(&v.sqlmapArgs, "sqlmap-args", "--batch --dbs", "Arguments passed to sqlmap")
	fs.BoolVar(&v.wait, "wait", false, "Wait for batch scans to finish")
	fs.IntVar(&v.katanaDepth, "katana-depth", 3, "Crawl depth")
	fs.DurationVar(&v.toolTimeout, "tool-timeout", 0, "Timeout for each enumeration tool (0 = none)")
	fs.StringToStringVar(&v.toolPaths, "tool-path", nil, "Binary override, e.g. katana=/opt/katana")
	fs.StringVarP(&v.configFile, "config", "c", "", "YAML configuration file")
	fs.BoolVarP(&v.quiet, "quiet", "q", false, "No progress output")
	fs.StringVar(&v.format, "format", "text", "Progress output when not on a terminal: text|json")
	fs.StringVar(&v.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	fs.StringVar(&v.report, "report", "", "Write a JSON session report to this directory (- for stdout)")
	fs.BoolVarP(&v.verbose, "verbose", "V", false, "Debug logging")
	fs.BoolVarP(&v.version, "version", "v", false, "Print version and exit")
	fs.BoolVarP(&v.help, "help", "h", false, "Show help")
	return fs
}

// LoadArgs resolves the configuration from args (without the program name).
func LoadArgs(args []string) (Config, error) {
	cfg := DefaultConfig()

	var fv flagValues
	fs := newFlagSet(&fv)
	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if fv.help || fv.version {
		cfg.ShowHelp, cfg.PrintVersion = fv.help, fv.version
		return cfg, nil
	}

	// A bare positional argument is accepted as the target.
	if rest := fs.Args(); len(rest) > 0 {
		if len(rest) > 1 {
			return cfg, errors.Wrapf(errors.ErrInvalidInput, "unexpected arguments: %s", strings.Join(rest[1:], " "))
		}
		if !fs.Changed("target") {
			fv.target = rest[0]
			_ = fs.Set("target", rest[0])
		}
	}

	cfg.ConfigFile = getenv(envPrefix+"CONFIG", "")
	if fs.Changed("config") {
		cfg.ConfigFile = fv.configFile
	}
	if cfg.ConfigFile != "" {
		if err := loadFile(&cfg, cfg.ConfigFile); err != nil {
			return cfg, err
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}
	applyFlags(&cfg, fs, &fv)
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFile merges a YAML file over the defaults. Tool entries are merged
// per tool so a file naming only katana keeps the other defaults.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "read config %s: %v", path, err)
	}

	defaults := cfg.Tools
	cfg.Tools = nil

	var probe struct {
		Prompt struct {
			Params *[]string `yaml:"params"`
		} `yaml:"prompt"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "parse config %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "parse config %s: %v", path, err)
	}
	cfg.Prompt.ParamsSet = probe.Prompt.Params != nil

	merged := defaults
	for name, tc := range cfg.Tools {
		base, ok := merged[name]
		if !ok {
			base = ports.DefaultToolConfig(name)
		}
		if tc.ExecPath != "" {
			base.ExecPath = tc.ExecPath
		}
		if tc.Args != nil {
			base.Args = tc.Args
		}
		if tc.Timeout != 0 {
			base.Timeout = tc.Timeout
		}
		if len(tc.Extra) > 0 {
			extra := make(map[string]interface{}, len(base.Extra)+len(tc.Extra))
			for k, v := range base.Extra {
				extra[k] = v
			}
			for k, v := range tc.Extra {
				extra[k] = v
			}
			base.Extra = extra
		}
		merged[name] = base
	}
	cfg.Tools = merged
	return nil
}

// loadFromEnv applies SQLIHUNT_* variables.
//
//	SQLIHUNT_TARGET, SQLIHUNT_WORKDIR, SQLIHUNT_MODE, SQLIHUNT_ARCHIVE,
//	SQLIHUNT_PARAMS (comma separated), SQLIHUNT_BATCH_SIZE,
//	SQLIHUNT_SQLMAP_ARGS, SQLIHUNT_WAIT, SQLIHUNT_QUIET, SQLIHUNT_FORMAT,
//	SQLIHUNT_LOG_LEVEL, SQLIHUNT_TOOLS_<NAME>_PATH, SQLIHUNT_TOOLS_<NAME>_TIMEOUT
func loadFromEnv(cfg *Config) error {
	if v := getenv(envPrefix+"TARGET", ""); v != "" {
		cfg.Core.Target = v
	}
	if v := getenv(envPrefix+"WORKDIR", ""); v != "" {
		cfg.Core.WorkDir = v
	}
	if v := getenv(envPrefix+"MODE", ""); v != "" {
		cfg.Prompt.Mode = v
	}
	if v := getenv(envPrefix+"ARCHIVE", ""); v != "" {
		cfg.Prompt.Archive = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PARAMS"); ok {
		cfg.Prompt.Params = splitList(v)
		cfg.Prompt.ParamsSet = true
	}
	if v := getenv(envPrefix+"BATCH_SIZE", ""); v != "" {
		cfg.Scan.BatchSize = parseInt(v, cfg.Scan.BatchSize)
	}
	if v, ok := os.LookupEnv(envPrefix + "SQLMAP_ARGS"); ok {
		cfg.Scan.SqlmapArgs = strings.Fields(v)
	}
	if v := getenv(envPrefix+"WAIT", ""); v != "" {
		cfg.Scan.Wait = parseBool(v)
	}
	if v := getenv(envPrefix+"QUIET", ""); v != "" {
		cfg.Output.Quiet = parseBool(v)
	}
	if v := getenv(envPrefix+"FORMAT", ""); v != "" {
		cfg.Output.Format = v
	}
	if v := getenv(envPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.Output.LogLevel = v
	}
	if v := getenv(envPrefix+"REPORT", ""); v != "" {
		cfg.Output.Report = v
	}

	for _, name := range ToolNames {
		prefix := fmt.Sprintf("%sTOOLS_%s_", envPrefix, strings.ToUpper(name))
		tc := cfg.Tools[name]
		if v := getenv(prefix+"PATH", ""); v != "" {
			tc.ExecPath = v
		}
		if v := getenv(prefix+"TIMEOUT", ""); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return errors.Wrapf(errors.ErrInvalidInput, "%sTIMEOUT: %v", prefix, err)
			}
			tc.Timeout = d
		}
		cfg.Tools[name] = tc
	}
	return nil
}

func applyFlags(cfg *Config, fs *pflag.FlagSet, v *flagValues) {
	if fs.Changed("target") {
		cfg.Core.Target = v.target
	}
	if fs.Changed("workdir") {
		cfg.Core.WorkDir = v.workDir
	}
	if fs.Changed("mode") {
		cfg.Prompt.Mode = v.mode
	}
	if fs.Changed("archive") {
		cfg.Prompt.Archive = v.archive
	}
	if fs.Changed("params") {
		cfg.Prompt.Params = v.params
		cfg.Prompt.ParamsSet = true
	}
	if fs.Changed("add-param") {
		cfg.Prompt.AddParams = append(cfg.Prompt.AddParams, v.addParams...)
	}
	if fs.Changed("remove-param") {
		cfg.Prompt.RemoveParams = append(cfg.Prompt.RemoveParams, v.removeParam...)
	}
	if fs.Changed("batch-size") {
		cfg.Scan.BatchSize = v.batchSize
	}
	if fs.Changed("sqlmap-args") {
		cfg.Scan.SqlmapArgs = strings.Fields(v.sqlmapArgs)
	}
	if fs.Changed("wait") {
		cfg.Scan.Wait = v.wait
	}
	if fs.Changed("katana-depth") {
		tc := cfg.Tools["katana"]
		extra := make(map[string]interface{}, len(tc.Extra)+1)
		for k, val := range tc.Extra {
			extra[k] = val
		}
		extra["depth"] = v.katanaDepth
		tc.Extra = extra
		cfg.Tools["katana"] = tc
	}
	if fs.Changed("tool-timeout") {
		for _, name := range ToolNames {
			if name == "sqlmap" {
				continue
			}
			tc := cfg.Tools[name]
			tc.Timeout = v.toolTimeout
			cfg.Tools[name] = tc
		}
	}
	if fs.Changed("tool-path") {
		for name, path := range v.toolPaths {
			tc, ok := cfg.Tools[name]
			if !ok {
				tc = ports.DefaultToolConfig(name)
			}
			tc.ExecPath = path
			cfg.Tools[name] = tc
		}
	}
	if fs.Changed("quiet") {
		cfg.Output.Quiet = v.quiet
	}
	if fs.Changed("format") {
		cfg.Output.Format = v.format
	}
	if fs.Changed("log-level") {
		cfg.Output.LogLevel = v.logLevel
	}
	if fs.Changed("report") {
		cfg.Output.Report = v.report
	}
	if fs.Changed("verbose") {
		cfg.Output.Verbose = v.verbose
	}
}

func normalize(c *Config) {
	c.Core.Target = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(c.Core.Target)), ".")
	if strings.TrimSpace(c.Core.WorkDir) == "" {
		c.Core.WorkDir = "."
	}
	c.Prompt.Archive = strings.ToLower(strings.TrimSpace(c.Prompt.Archive))
	if c.Prompt.Archive == "" {
		c.Prompt.Archive = "ask"
	}
	c.Prompt.Mode = strings.TrimSpace(c.Prompt.Mode)
	if c.Scan.BatchSize < 1 {
		c.Scan.BatchSize = 200
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Verbose {
		c.Output.LogLevel = "debug"
	}
}

// Validate checks enumerated values. Mode is checked when the session asks
// for it, so an invalid mode behaves like an invalid menu answer.
func (c Config) Validate() error {
	switch c.Prompt.Archive {
	case "ask", "yes", "no":
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "archive must be ask, yes or no, got %q", c.Prompt.Archive)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "format must be text or json, got %q", c.Output.Format)
	}
	for name, tc := range c.Tools {
		if tc.Timeout < 0 {
			return errors.Wrapf(errors.ErrInvalidInput, "%s timeout cannot be negative", name)
		}
	}
	return nil
}

// Tool returns the configuration for name, falling back to defaults.
func (c Config) Tool(name string) ports.ToolConfig {
	if tc, ok := c.Tools[name]; ok {
		if tc.ExecPath == "" {
			tc.ExecPath = name
		}
		return tc
	}
	return ports.DefaultToolConfig(name)
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
