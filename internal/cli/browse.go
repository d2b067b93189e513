package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/adminui/internal/config"
	"github.com/rshade/adminui/internal/members"
	"github.com/rshade/adminui/internal/pagination"
	"github.com/rshade/adminui/internal/source"
	"github.com/rshade/adminui/internal/tui"
)

// NewBrowseCmd creates the "browse" command: the interactive member table.
// When stdout is not a terminal, or with --plain, the first page is printed
// as plain text instead.
func NewBrowseCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactive member table",
		Long: `Load the member list once and open an interactive table to search, edit,
select, delete and page through it. Changes live in memory only and are
discarded on exit.`,
		Example: `  # Browse the default member list
  adminui browse

  # Non-interactive output (also used when stdout is not a terminal)
  adminui browse --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plain, _ = cmd.Flags().GetBool("plain")
			return executeBrowse(cmd, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "force non-interactive plain text output")

	return cmd
}

func executeBrowse(cmd *cobra.Command, plain bool) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	fetcher, err := buildFetcher(ctx, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch tui.DetectOutputMode(out, plain) {
	case tui.OutputModeInteractive:
		return runInteractiveBrowse(ctx, cfg, fetcher, tui.TerminalWidth(out))
	case tui.OutputModeStyled:
		return renderPlainBrowse(cmd, cfg, fetcher, true)
	case tui.OutputModePlain:
		fallthrough
	default:
		return renderPlainBrowse(cmd, cfg, fetcher, false)
	}
}

// runInteractiveBrowse runs the Bubble Tea program. The fetch happens inside
// the program so the spinner shows while it runs.
func runInteractiveBrowse(ctx context.Context, cfg *config.Config, fetcher source.Fetcher, width int) error {
	model := tui.NewMembersModel(ctx, fetcher.Fetch, tui.MembersOptions{
		PageSize: cfg.PageSize,
		Timeout:  cfg.Timeout,
		Strict:   cfg.Strict,
		Width:    width,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	if m, ok := final.(tui.MembersModel); ok && m.Err() != nil {
		return &ExitError{Code: ExitCodeLoadFailure, Err: fmt.Errorf("%w: %w", ErrLoadFailed, m.Err())}
	}
	return nil
}

// renderPlainBrowse prints the first page the interactive table would show.
// styled adds the table's page buttons and counts line.
func renderPlainBrowse(cmd *cobra.Command, cfg *config.Config, fetcher source.Fetcher, styled bool) error {
	records, err := loadRecords(cmd.Context(), cfg, fetcher)
	if err != nil {
		return err
	}

	list := members.NewState(cfg.PageSize)
	list.Load(records)
	return writeBrowsePage(cmd.OutOrStdout(), list, styled)
}

func writeBrowsePage(w io.Writer, list *members.State, styled bool) error {
	meta := pagination.NewMeta(list.Page(), list.PageSize(), list.Len())
	if err := renderMembersTable(w, membersOutput{Members: list.Window(), Pagination: meta}); err != nil {
		return err
	}
	if !styled {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n",
		tui.RenderPageButtons(list.Page(), list.PageCount()), tui.CountsLine(list))
	return err
}
