package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "shelve.dev/pkg/shelve/internal/model"
)

// theme holds the styles applied to each kind of line.
type theme struct {
	path    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	heading lipgloss.Style
}

func plainTheme() theme {
	plain := lipgloss.NewStyle()

	return theme{
		path:    plain,
		muted:   plain,
		success: plain,
		failure: plain,
		warning: plain,
		heading: plain,
	}
}

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd   *cobra.Command
	theme theme
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, theme: plainTheme()}
}

// DisplayCatalog prints every candidate directory followed by the count.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, catalog m.Catalog) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, entry := range catalog.Entries {
		s.printf("%s\n", s.theme.path.Render(string(entry.Path)))
	}

	s.printf("%s\n", s.theme.heading.Render(fmt.Sprintf("found %d directories", catalog.Len())))

	if len(catalog.Skipped) > 0 {
		s.printf("%s\n", s.theme.warning.Render(fmt.Sprintf("skipped %d unreadable directories", len(catalog.Skipped))))
	}
}

// DisplayWarning prints a non-fatal diagnostic.
func (s *SimpleUI) DisplayWarning(ctx context.Context, message string, err error) {
	if ctx.Err() != nil {
		return
	}

	line := "warning: " + message
	if err != nil {
		line += ": " + err.Error()
	}

	s.errPrintf("%s\n", s.theme.warning.Render(line))
}

// DisplaySelected prints the file picked for the current iteration.
func (s *SimpleUI) DisplaySelected(ctx context.Context, iteration int, file m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", s.theme.muted.Render(fmt.Sprintf("[%d] file to sort:", iteration)), s.theme.path.Render(string(file)))
}

// DisplayDecision prints the classifier's answer.
func (s *SimpleUI) DisplayDecision(ctx context.Context, _ m.Path, destination m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", s.theme.muted.Render("    new dir:"), s.theme.path.Render(string(destination)))
}

// DisplayMove prints the outcome of a move attempt.
func (s *SimpleUI) DisplayMove(ctx context.Context, move m.Move) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch move.Status {
	case m.MoveMoved:
		s.printf("    %s\n", s.theme.success.Render(fmt.Sprintf("moved %s to %s", move.Task.File, move.Task.Target)))
	case m.MovePlanned:
		s.printf("    %s\n", s.theme.muted.Render(fmt.Sprintf("would move %s to %s", move.Task.File, move.Task.Target)))
	default:
		s.printf("    %s\n", s.theme.failure.Render(fmt.Sprintf("failed to move %s to %s: %s", move.Task.File, move.Task.Target, move.Error)))
	}
}

// DisplayOutcome prints the terminal reason and a short tally.
func (s *SimpleUI) DisplayOutcome(ctx context.Context, report m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch report.Outcome {
	case m.StateDone:
		s.printf("%s\n", s.theme.heading.Render("Folder fully sorted!"))
	case m.StateCapReached:
		s.printf("%s\n", s.theme.heading.Render("Iteration limit reached"))
	default:
		s.printf("%s\n", s.theme.failure.Render("Sort stopped early"))
	}

	s.printf("%s\n", s.theme.muted.Render(fmt.Sprintf("moved %d, failed %d, planned %d",
		report.Count(m.MoveMoved), report.Count(m.MoveFailed), report.Count(m.MovePlanned))))
}

// DisplayReports renders previous runs as a table.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No sort runs recorded\n")
		return nil
	}

	s.printf("\n%s", renderReportsTable(reports))

	return nil
}

func renderReportsTable(reports []m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Started", "Source", "Outcome", "Moved", "Failed", "Planned"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	totalMoved := 0

	for _, report := range reports {
		outcome := string(report.Outcome)
		if report.DryRun {
			outcome += " (dry run)"
		}

		moved := report.Count(m.MoveMoved)
		totalMoved += moved

		table.Append([]string{
			report.StartedAt.Local().Format("2006-01-02 15:04"),
			string(report.Source),
			outcome,
			fmt.Sprintf("%d", moved),
			fmt.Sprintf("%d", report.Count(m.MoveFailed)),
			fmt.Sprintf("%d", report.Count(m.MovePlanned)),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Runs %d", len(reports)), "", "",
		fmt.Sprintf("%d", totalMoved), "", "",
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errPrintf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
