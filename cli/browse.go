package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"participativos/tui"
	"participativos/urlstate"
)

func (a *app) browseCmd() *cobra.Command {
	var startURL string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBrowse(cmd, startURL)
		},
	}
	cmd.Flags().StringVar(&startURL, "url", "", "start from this address or query string")
	return cmd
}

// runBrowse starts the terminal UI. Log output goes to LOG_FILE, or nowhere,
// so it does not draw over the screen.
func (a *app) runBrowse(cmd *cobra.Command, startURL string) error {
	if a.cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(a.cfg.LogFile), 0755); err != nil {
			return fmt.Errorf("cli: create log dir: %w", err)
		}
		closer, err := a.logger.ToFile(a.cfg.LogFile)
		if err != nil {
			return fmt.Errorf("cli: open log file: %w", err)
		}
		defer closer.Close()
	} else {
		a.logger.SetOutput(io.Discard)
	}

	registry, err := a.registry()
	if err != nil {
		return err
	}
	addr, err := a.address(startURL)
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Options{
		Context:  cmd.Context(),
		Loader:   a.datasetService(),
		Codec:    urlstate.NewCodec(a.logger),
		Address:  addr,
		Registry: registry,
		Debounce: a.cfg.SearchDebounce,
		Logger:   a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("cli: browser: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), addr.ShareURL())
	return nil
}
