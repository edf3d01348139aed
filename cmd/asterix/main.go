// Command asterix is a minimal desktop shell: it issues HTTP GET requests on
// behalf of UI tabs and shows a textual preview of the fetched body.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/EliasL-git/ASTERIX-dev/internal/browser"
	"github.com/EliasL-git/ASTERIX-dev/internal/config"
	"github.com/EliasL-git/ASTERIX-dev/internal/logging"
	"github.com/EliasL-git/ASTERIX-dev/internal/monitoring"
	"github.com/EliasL-git/ASTERIX-dev/internal/runtime"
	"github.com/EliasL-git/ASTERIX-dev/internal/shell"
)

var fetchWait time.Duration

var rootCmd = &cobra.Command{
	Use:   "asterix",
	Short: "A minimal browser shell with a textual page preview",
	Long: `asterix opens a terminal shell with logical browser tabs. Navigation
requests run on a background runtime that serializes fetches; the UI polls for
completion and displays a plain-text preview of the page body.

Configuration comes from ASTERIX_* environment variables (user agent, fetch
timeout, rate limit, log level).`,
	RunE: runShell,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch one URL through the navigation core and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().DurationVar(&fetchWait, "wait", time.Minute, "how long to poll for completion")
	rootCmd.AddCommand(fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (runtime.Handle, *runtime.Runtime, *logging.Logger, error) {
	cfg := config.LoadOrDefault()

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return runtime.Handle{}, nil, nil, fmt.Errorf("failed to initialise logging: %w", err)
	}

	core, err := browser.New(browser.Options{
		UserAgent:     cfg.Browser.UserAgent,
		Timeout:       cfg.Browser.FetchTimeout,
		RatePerSecond: cfg.Browser.RatePerSecond,
	}, log.Named("browser"), monitoring.New())
	if err != nil {
		return runtime.Handle{}, nil, nil, fmt.Errorf("failed to start browser core: %w", err)
	}

	rt := runtime.New(core, log.Named("runtime"))
	return rt.Handle(), rt, log, nil
}

func runShell(cmd *cobra.Command, args []string) error {
	handle, rt, log, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()
	defer log.Sync() //nolint:errcheck

	return shell.Run(handle, log.Named("shell"))
}

func runFetch(cmd *cobra.Command, args []string) error {
	handle, rt, log, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()
	defer log.Sync() //nolint:errcheck

	target, err := shell.ParseUserURL(args[0])
	if err != nil {
		return err
	}

	tab := handle.CreateTab("New Tab")
	job, err := handle.RequestNavigation(tab.ID, target)
	if err != nil {
		return err
	}

	deadline := time.After(fetchWait)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return fmt.Errorf("timed out waiting for %s", target)
		case <-ticker.C:
			res, done := job.TryComplete()
			if !done {
				continue
			}
			if res.Err != nil {
				return res.Err
			}
			return printResult(handle, tab.ID, res.Page)
		}
	}
}

func printResult(handle runtime.Handle, id browser.TabID, page *browser.PageResponse) error {
	for _, tab := range handle.Tabs() {
		if tab.ID != id {
			continue
		}
		fmt.Printf("title: %s\n", tab.Title)
		fmt.Printf("url: %s\n", page.URL)
		fmt.Printf("status: %d\n", page.Status)
		if page.MIMEType != "" {
			fmt.Printf("content-type: %s\n", page.MIMEType)
		}
		fmt.Printf("\n%s\n", shell.Preview(page.Body))
		return nil
	}
	return fmt.Errorf("tab %d disappeared", id)
}
