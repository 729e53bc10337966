package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/docker/go-units"
	"github.com/dustin/go-humanize"
)

const legend = "└ Values in ms; 98%% confidence interval displayed; s = statistically equal to fastest; * = within %s of fastest"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	fastestStyle = cellStyle.Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// FormatEntry renders a cell as "<mean> ± <ci> (<pct>%) <s> <*>" with times in
// milliseconds. The fastest entry carries both markers.
func FormatEntry(e *Entry) string {
	if e == nil {
		return "-"
	}
	mean := e.Mean / 1e6
	ci := e.CI / 1e6
	pct := 0.0
	if mean > 0 {
		pct = ci / mean * 100
	}
	stat, near := " ", " "
	if e.StatTied || e.Fastest {
		stat = "s"
	}
	if e.PracticallyTied || e.Fastest {
		near = "*"
	}
	return fmt.Sprintf("%.5f ± %.5f (%.0f%%) %s %s", mean, ci, pct, stat, near)
}

// Render prints the report as one table per group followed by the run summary.
func Render(w io.Writer, rep *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("sortbench report %s (%s)", rep.RunID, rep.GeneratedAt.Format(time.RFC3339))))
	fmt.Fprintf(&b, "Host: %s | Kernel: %s | CPU: %s (%d threads, %d cores) | RAM: %s MiB\n\n",
		rep.Hardware.Hostname,
		rep.Hardware.Kernel,
		rep.Hardware.CPUModel,
		rep.Hardware.LogicalCPUs,
		rep.Hardware.PhysicalCores,
		humanize.Comma(rep.Hardware.MemoryTotalMB),
	)

	headers := make([]string, 0, len(rep.Sizes)+1)
	headers = append(headers, "")
	for _, s := range rep.Sizes {
		headers = append(headers, humanize.Comma(int64(s)))
	}
	threshold := fmt.Sprintf("%.4g%%", rep.Settings.DiffThreshold*100)

	for _, g := range rep.Groups {
		fmt.Fprintf(&b, "%s:\n", titleStyle.Render(g.Name))
		b.WriteString(groupTable(headers, g).String())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf(legend, threshold)))
		b.WriteString("\n\n")
	}

	c := rep.Counters
	fmt.Fprintf(&b, "Jobs: %s generated, %s executed, %s discarded, %s late; %d cells exhausted; %d workers\n",
		humanize.Comma(int64(c.Generated)),
		humanize.Comma(int64(c.Executed)),
		humanize.Comma(int64(c.Discarded)),
		humanize.Comma(int64(c.Late)),
		c.ExhaustedCells,
		c.Workers,
	)
	fmt.Fprintf(&b, "Runtime: %s\n", HumanRuntime(rep.Runtime))

	_, err := io.WriteString(w, b.String())
	return err
}

func groupTable(headers []string, g Group) *table.Table {
	rows := make([][]string, 0, len(g.Rows))
	for _, r := range g.Rows {
		row := make([]string, 0, len(r.Entries)+1)
		row = append(row, r.Name)
		for _, e := range r.Entries {
			row = append(row, FormatEntry(e))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 && row >= 0 && row < len(g.Rows) {
				if e := g.Rows[row].Entries[col-1]; e != nil && e.Fastest {
					return fastestStyle
				}
			}
			return cellStyle
		})
}

// HumanRuntime renders d like "About a minute (63.2s)".
func HumanRuntime(d time.Duration) string {
	return fmt.Sprintf("%s (%s)", units.HumanDuration(d), d.Round(100*time.Millisecond))
}
