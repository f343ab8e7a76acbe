package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/idelchi/dirpulse/internal/dirpulse"
	"github.com/idelchi/dirpulse/internal/scan"
)

const (
	// MaxNameWidth is the maximum width of file names in the report.
	MaxNameWidth = 48
	// YAMLIndent is the indentation used for YAML output.
	YAMLIndent = 2
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *scan.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintYAML outputs the report in YAML format.
func PrintYAML(report *scan.Report, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	enc.SetIndent(YAMLIndent)

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return enc.Close()
}

// PrintTable outputs the report in human-readable form.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *scan.Report, writer io.Writer, noColor bool) error {
	summary := report.Summary

	fmt.Fprintln(writer, hero(report))
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "%d files · %d directories · %s total\n\n",
		summary.FileCount, summary.DirCount, humanize.IBytes(summary.TotalSize))

	largestTable(summary, writer)
	fmt.Fprintln(writer)
	extensionTable(summary, writer)
	fmt.Fprintln(writer)
	ageTable(summary, writer, noColor)

	fmt.Fprintf(writer, "\nSkipped: %d · Errors: %d · Elapsed: %v\n", report.Skipped, report.Errors, report.Elapsed)

	if report.Partial {
		fmt.Fprintln(writer, "Scan interrupted, statistics cover the entries processed so far.")
	}

	return nil
}

// hero renders the boxed headline of the report.
func hero(report *scan.Report) string {
	summary := report.Summary

	largest := "none"
	if len(summary.TopFiles) > 0 {
		top := summary.TopFiles[0]
		largest = fmt.Sprintf("%s (%s)", text.Snip(top.Name, MaxNameWidth, "..."), humanize.IBytes(top.Size))
	}

	title := "dirpulse · " + report.Root
	line := fmt.Sprintf("%s Stale · Largest: %s · Top %d = %.2f%%",
		humanize.IBytes(summary.Age.Stale.Size), largest, summary.TopN, summary.TopShare)

	width := max(lipgloss.Width(title), lipgloss.Width(line))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Repeat("─", width), line))
}

// share returns part as a percentage of total, 0 when total is 0.
func share(part, total uint64) float64 {
	if total == 0 {
		return 0
	}

	return 100.0 * float64(part) / float64(total)
}

func newTable(writer io.Writer, title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)

	return tbl
}

func largestTable(summary *dirpulse.Summary, writer io.Writer) {
	tbl := newTable(writer, fmt.Sprintf("Top %d Largest", summary.TopN))
	tbl.AppendHeader(table.Row{"#", "Size", "Name", "Share"})

	for i, f := range summary.TopFiles {
		tbl.AppendRow(table.Row{
			i + 1,
			humanize.IBytes(f.Size),
			text.Snip(f.Name, MaxNameWidth, "..."),
			fmt.Sprintf("%.1f%%", share(f.Size, summary.TotalSize)),
		})
	}

	tbl.Render()
}

// sortedExtensions orders extensions by descending file count, then size and name.
func sortedExtensions(hist dirpulse.ExtensionHistogram) []dirpulse.ExtensionEntry {
	entries := hist.Entries()

	slices.SortFunc(entries, func(a, b dirpulse.ExtensionEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		if c := cmp.Compare(b.Size, a.Size); c != 0 {
			return c
		}

		return strings.Compare(a.Ext, b.Ext)
	})

	return entries
}

func extensionTable(summary *dirpulse.Summary, writer io.Writer) {
	tbl := newTable(writer, "By Extension")
	tbl.AppendHeader(table.Row{"Extension", "Files", "Size", "Share"})

	for _, e := range sortedExtensions(summary.Extensions) {
		tbl.AppendRow(table.Row{
			"." + e.Ext,
			e.Count,
			humanize.IBytes(e.Size),
			fmt.Sprintf("%.1f%%", share(e.Size, summary.TotalSize)),
		})
	}

	tbl.Render()
}

func ageTable(summary *dirpulse.Summary, writer io.Writer, noColor bool) {
	rows := []struct {
		label string
		attr  color.Attribute
		stats dirpulse.BucketStats
	}{
		{"Fresh (< 30 days)", color.FgGreen, summary.Age.Fresh},
		{"Aging (30 days - 6 mo)", color.FgYellow, summary.Age.Aging},
		{"Stale (> 6 months)", color.FgRed, summary.Age.Stale},
	}

	tbl := newTable(writer, "File Age")
	tbl.AppendHeader(table.Row{"Age", "Files", "Size"})

	for _, row := range rows {
		label := color.New(row.attr)
		if noColor {
			label.DisableColor()
		}

		tbl.AppendRow(table.Row{label.Sprint(row.label), row.stats.Count, humanize.IBytes(row.stats.Size)})
	}

	tbl.Render()
}
