// Command smoke checks every public endpoint of a running bistro
// instance and prints a pass/fail report.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/mzahradnik/bistro/internal/smoke"
)

const runTimeout = 2 * time.Minute

func main() {
	var (
		baseURL = flag.String("url", smoke.DefaultBaseURL, "Base URL of the service")
		prefix  = flag.String("prefix", "", "Route prefix, e.g. /api")
		timeout = flag.Duration("timeout", smoke.DefaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	cfg := smoke.NewConfig()
	cfg.BaseURL = *baseURL
	cfg.RoutePrefix = *prefix
	cfg.Timeout = *timeout

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	results, err := smoke.NewRunner(cfg).Run(ctx)
	os.Stdout.WriteString(smoke.Report(results))
	if err != nil {
		os.Exit(1)
	}
}
