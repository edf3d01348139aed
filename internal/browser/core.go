package browser

import (
	"fmt"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/EliasL-git/ASTERIX-dev/internal/logging"
	"github.com/EliasL-git/ASTERIX-dev/internal/monitoring"
)

// redirectLimit caps redirect-following per fetch.
const redirectLimit = 10

// Options configures the navigation core at construction time.
type Options struct {
	// UserAgent, when non-empty, is sent as a fixed User-Agent header on
	// every request.
	UserAgent string

	// Timeout bounds one whole fetch. Zero leaves the transport defaults.
	Timeout time.Duration

	// RatePerSecond throttles outgoing fetches. Zero or negative means
	// unlimited.
	RatePerSecond float64
}

// Core performs network requests and tracks tab metadata. All fetches share
// one HTTP client (connection pool plus persistent cookie jar); the tab
// registry is the only other shared mutable state.
type Core struct {
	client  *resty.Client
	limiter *rate.Limiter
	tabs    *Registry
	log     *logging.Logger
	metrics *monitoring.Metrics
}

// New builds a Core with a fresh registry and a configured HTTP client.
// Metrics may be nil.
func New(opts Options, log *logging.Logger, metrics *monitoring.Metrics) (*Core, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise cookie jar: %w", err)
	}

	client := resty.New().
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(redirectLimit)).
		SetCookieJar(jar)
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	if log == nil {
		log = logging.NewNop()
	}

	return &Core{
		client:  client,
		limiter: limiter,
		tabs:    NewRegistry(),
		log:     log,
		metrics: metrics,
	}, nil
}

// CreateTab allocates a new tab in the registry.
func (c *Core) CreateTab(title string) TabSnapshot {
	tab := c.tabs.CreateTab(title)
	c.metrics.TabCreated()
	return tab
}

// Tabs returns a snapshot of all tabs for UI consumption.
func (c *Core) Tabs() []TabSnapshot {
	return c.tabs.Snapshot()
}

// Registry exposes the underlying tab registry.
func (c *Core) Registry() *Registry {
	return c.tabs
}
