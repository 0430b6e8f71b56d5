package smoke

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one endpoint check.
type Result struct {
	Path     string
	Status   int
	Duration time.Duration
	Err      error
}

// OK reports whether the check passed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Runner executes the endpoint checks against one instance.
type Runner struct {
	cfg    Config
	client *http.Client
}

// NewRunner creates a runner for the configured instance.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Run fetches every endpoint concurrently and collects the results in
// check order. The returned error is non-nil when any check failed.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	checks := Checks()
	results := make([]Result, len(checks))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for i, check := range checks {
		i, check := i, check
		g.Go(func() error {
			res := r.runCheck(gctx, check)
			mu.Lock()
			results[i] = res
			mu.Unlock()
			if res.Err != nil {
				return fmt.Errorf("%s: %w", check.Path, res.Err)
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func (r *Runner) runCheck(ctx context.Context, check Check) Result {
	url := strings.TrimSuffix(r.cfg.BaseURL, "/") + r.cfg.RoutePrefix + check.Path
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Path: check.Path, Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{Path: check.Path, Duration: time.Since(start), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	res := Result{Path: check.Path, Status: resp.StatusCode, Duration: time.Since(start)}

	if resp.StatusCode != http.StatusOK {
		res.Err = fmt.Errorf("status %d", resp.StatusCode)
		return res
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		res.Err = fmt.Errorf("content type %q", ct)
		return res
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read body: %w", err)
		return res
	}
	if check.Verify != nil {
		res.Err = check.Verify(body)
	}
	return res
}

// Report renders a plain-text pass/fail summary.
func Report(results []Result) string {
	var b strings.Builder
	passed := 0
	for _, res := range results {
		if res.OK() {
			passed++
			fmt.Fprintf(&b, "PASS %-18s %3d %s\n", res.Path, res.Status, res.Duration.Round(time.Millisecond))
			continue
		}
		fmt.Fprintf(&b, "FAIL %-18s %v\n", res.Path, res.Err)
	}
	fmt.Fprintf(&b, "%d/%d endpoints passed\n", passed, len(results))
	return b.String()
}
