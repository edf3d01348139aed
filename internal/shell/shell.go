// Package shell is the interactive terminal front end: a thin consumer of tab
// snapshots and navigation jobs. It never blocks on network I/O — it only
// enqueues commands through the runtime handle and polls jobs on a tick.
package shell

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/EliasL-git/ASTERIX-dev/internal/logging"
	"github.com/EliasL-git/ASTERIX-dev/internal/runtime"
)

// Run launches the shell on the current goroutine and blocks until the user
// quits.
func Run(handle runtime.Handle, log *logging.Logger) error {
	if log == nil {
		log = logging.NewNop()
	}

	program := tea.NewProgram(newModel(handle, log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run shell: %w", err)
	}
	return nil
}
