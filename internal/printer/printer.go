// Package printer renders records, tables, and statistics as styled
// display text for the informational subcommands.
package printer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-ports/see/internal/registry"
	"github.com/go-ports/see/internal/store"
)

var (
	primary   = lipgloss.Color("99")  // purple
	secondary = lipgloss.Color("240") // gray
	accent    = lipgloss.Color("86")  // green
	highlight = lipgloss.Color("214") // orange

	idStyle     = lipgloss.NewStyle().Bold(true).Foreground(primary)
	aliasStyle  = lipgloss.NewStyle().Foreground(accent)
	tagStyle    = lipgloss.NewStyle().Foreground(highlight)
	cmdStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(secondary)
)

// Record prints a single record in the long form used by show, search,
// and edit confirmations.
func Record(w io.Writer, rec *store.Record) {
	fmt.Fprintf(w, "\n%s %s\n", idStyle.Render(fmt.Sprintf("[%d]", rec.ID)), rec.Description)
	fmt.Fprintf(w, "    Command: %s\n", cmdStyle.Render(rec.Command))
	if len(rec.Tags) > 0 {
		hashed := make([]string, len(rec.Tags))
		for i, t := range rec.Tags {
			hashed[i] = "#" + t
		}
		fmt.Fprintf(w, "    Tags: %s\n", tagStyle.Render(strings.Join(hashed, ", ")))
	}
	if rec.Alias != "" {
		fmt.Fprintf(w, "    Alias: %s\n", aliasStyle.Render(rec.Alias))
	}
	fmt.Fprintf(w, "    Used: %d times\n", rec.UsageCount)
}

// Table prints records in columns. Long command text is truncated; show
// prints the full text.
func Table(w io.Writer, recs []*store.Record) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("ID\tALIAS\tDESCRIPTION\tCOMMAND\tTAGS"))
	for _, rec := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			idStyle.Render(fmt.Sprint(rec.ID)),
			aliasStyle.Render(rec.Alias),
			rec.Description,
			cmdStyle.Render(truncate(rec.Command, 60)),
			tagStyle.Render(strings.Join(rec.Tags, ", ")),
		)
	}
	tw.Flush()
}

// Stats prints the aggregate produced by the stats operation.
func Stats(w io.Writer, st registry.Stats) {
	fmt.Fprintf(w, "\n%s\n", headerStyle.Render("Statistics"))
	fmt.Fprintf(w, "   Total commands: %d\n", st.Total)
	fmt.Fprintf(w, "   Total runs: %d\n", st.TotalUsage)
	fmt.Fprintf(w, "   Unique tags: %d\n", st.UniqueTags)
	if len(st.Tags) > 0 {
		fmt.Fprintf(w, "   Tags: %s\n", tagStyle.Render(strings.Join(st.Tags, ", ")))
	}
	if len(st.MostUsed) > 0 {
		fmt.Fprintf(w, "\n   Most used commands:\n")
		for _, rec := range st.MostUsed {
			fmt.Fprintf(w, "   - %s %s (%d uses)\n",
				idStyle.Render(fmt.Sprintf("[%d]", rec.ID)), rec.Description, rec.UsageCount)
		}
	}
}

// Tags prints tag counts, most frequent first, ties alphabetical.
func Tags(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for t := range counts {
		names = append(names, t)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Fprintf(w, "\n%s\n", headerStyle.Render("Tags"))
	for _, t := range names {
		fmt.Fprintf(w, "  %s (%d)\n", tagStyle.Render(t), counts[t])
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
