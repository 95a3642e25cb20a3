package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/ui"
)

// errNoTTY is returned when the dashboard is asked for without a terminal.
var errNoTTY = errors.New("tui needs an interactive terminal; try `ls-almanac now`")

// isTerminal reports whether stdout is a terminal. Tests replace it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func newTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the live dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return WrapExitError(ExitUsage, "tui", errNoTTY)
			}
			p, a, err := opts.engine(cmd)
			if err != nil {
				return err
			}

			mgr := state.NewManager(a, p.Name, state.DefaultConfig())
			prog := tea.NewProgram(ui.New(mgr), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run dashboard: %w", err)
			}
			return nil
		},
	}
}
