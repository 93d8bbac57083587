package results

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)
)

// Summary describes the graph the run worked on
type Summary struct {
	Nodes       int
	Edges       int
	Communities int
	Elapsed     time.Duration
}

// RenderTable writes a human-readable table of pair results to w
func RenderTable(w io.Writer, summary Summary, results []*algorithms.PairResult) error {
	rows := make([][]string, 0, len(results))
	missing := make(map[int]bool)
	for i, r := range results {
		p := "n/a"
		if r.Polarization.Valid {
			p = fmt.Sprintf("%+.4f", r.Polarization.Value)
		} else {
			missing[i] = true
		}
		rows = append(rows, []string{
			formatCommunity(r.Pair.A),
			formatCommunity(r.Pair.B),
			humanize.Comma(int64(r.InternalNodes)),
			humanize.Comma(int64(r.BoundaryNodes)),
			p,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))).
		Headers("A", "B", "INTERNAL", "BOUNDARY", "POLARIZATION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case missing[row]:
				return missingStyle
			default:
				return cellStyle
			}
		})

	title := titleStyle.Render(fmt.Sprintf(
		"%s nodes, %s edges, %d communities, %d pairs in %s",
		humanize.Comma(int64(summary.Nodes)),
		humanize.Comma(int64(summary.Edges)),
		summary.Communities,
		len(results),
		summary.Elapsed.Round(time.Millisecond),
	))

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, title, t.String()))
	return err
}
