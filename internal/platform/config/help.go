// internal/platform/config/help.go
package config

import (
	"fmt"
	"os"
	"runtime"
)

const helpText = `
sqlihunt - SQL injection candidate discovery

USAGE:
  sqlihunt -t <domain> [options]
  sqlihunt <domain> [options]

  Runs subfinder -> httpx -> katana -> (waybackurls) for a new domain, keeps
  one URL per first query parameter, then hands the list to sqlmap. Running
  again for the same domain reuses the artifacts in the work directory.

CORE OPTIONS:
  -t, --target string        Target domain (e.g. example.com)
  -d, --workdir string       Directory holding artifacts (default ".")
  -c, --config string        YAML configuration file

PROMPT PRESETS (anything left unset is asked interactively):
  -m, --mode string          prioritized|general (also 1|2)
      --archive string       Archive lookup with waybackurls: ask|yes|no (default "ask")
      --params strings       Replace the high-risk parameter list
      --add-param strings    Add to the high-risk parameter list
      --remove-param strings Remove from the high-risk parameter list

SCAN OPTIONS:
      --batch-size int       URLs per sqlmap batch; larger sets are split (default 200)
      --sqlmap-args string   Arguments for every sqlmap run (default "--batch --dbs")
      --wait                 Wait for batch scans and report their exit status

TOOL OPTIONS:
      --katana-depth int     Crawl depth (default 3)
      --tool-timeout dur     Timeout per enumeration tool, 0 = none (default 0)
      --tool-path k=v        Binary override, e.g. --tool-path katana=/opt/katana

OUTPUT OPTIONS:
  -q, --quiet                No progress output
      --format string        Progress lines when stdout is not a TTY: text|json (default "text")
      --log-level string     debug|info|warn|error (default "warn")
      --report dir           Write a JSON session report to dir (- for stdout)
  -V, --verbose              Debug logging

INFO:
  -v, --version              Print version information and exit
  -h, --help                 Show this help message

EXAMPLES:
  Interactive run:
    sqlihunt -t example.com

  Unattended general scan, no archive lookup:
    sqlihunt -t example.com -m general --archive no

  Prioritized scan with an extra parameter, waiting on batches:
    sqlihunt -t example.com -m prioritized --add-param sort --wait

ENVIRONMENT VARIABLES:
  SQLIHUNT_TARGET, SQLIHUNT_WORKDIR, SQLIHUNT_CONFIG, SQLIHUNT_MODE,
  SQLIHUNT_ARCHIVE, SQLIHUNT_PARAMS=id,q, SQLIHUNT_BATCH_SIZE,
  SQLIHUNT_SQLMAP_ARGS, SQLIHUNT_WAIT, SQLIHUNT_QUIET, SQLIHUNT_FORMAT,
  SQLIHUNT_LOG_LEVEL

  Per tool (SUBFINDER, HTTPX, KATANA, WAYBACKURLS, SQLMAP):
  SQLIHUNT_TOOLS_KATANA_PATH=/opt/katana
  SQLIHUNT_TOOLS_KATANA_TIMEOUT=10m

  Flags override environment variables, which override the config file.

ARTIFACTS (in the work directory):
  last_domain.txt            Domain of the last complete run
  subdomains.txt             subfinder output
  live_subdomains.txt        httpx output
  endpoints_katana.txt       katana output
  endpoints_waybackurls.txt  waybackurls output
  final_endpoints.txt        Merged, sorted, unique endpoints
  param_urls.txt             Endpoints with a query string
  unique_param_urls.txt      One URL per first parameter name
  prioritized_urls.txt       URLs mentioning a high-risk parameter
  batch_N.txt / batch_N.log  Batch input and sqlmap output above the batch size

EXIT CODES:
  0  success
  1  a tool, storage or scan dispatch failure
  2  invalid configuration, target or menu selection
`

// PrintHelp prints the help message and exits.
func PrintHelp() {
	fmt.Fprint(os.Stdout, helpText)
	os.Exit(0)
}

// PrintVersion prints version information and exits.
func PrintVersion(version, commit, date string) {
	fmt.Printf("sqlihunt %s\n", version)
	fmt.Printf("  Commit:  %s\n", commit)
	fmt.Printf("  Built:   %s\n", date)
	fmt.Printf("  Go:      %s\n", getGoVersion())
	os.Exit(0)
}

func getGoVersion() string {
	return runtime.Version()
}
