package harness

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const rule = "======================================================="

// Printer writes human-readable reports. The format is for people, not for
// parsing.
type Printer struct {
	w     io.Writer
	title lipgloss.Style
	note  lipgloss.Style
}

// NewPrinter returns a Printer writing to w. Colour is only emitted when color
// is true and w is a terminal that supports it.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:     w,
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		note:  r.NewStyle().Faint(true),
	}
}

// Banner prints the configuration header.
func (p *Printer) Banner(cfg Config) error {
	cfg = cfg.withDefaults()
	_, err := fmt.Fprintf(p.w, "%s\nConfiguration:\n  Fibonacci N:      %d\n  Total tasks:      %d\n  CPU frequency:    %g GHz\n%s\n",
		p.title.Render("Context Switch Overhead Comparison"),
		cfg.FibN, cfg.Tasks, float64(cfg.Frequency), rule)
	return err
}

// Report prints one driver block.
func (p *Printer) Report(r *Report) error {
	if _, err := fmt.Fprintf(p.w, "\n%s\n", p.title.Render("=== "+r.Title+" ===")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "  Total time:\t%d ticks\t(%.1f ns)\t\n", uint64(r.Total), r.TotalNanos())
	for _, c := range r.Components {
		note := ""
		if c.Note != "" {
			note = p.note.Render("- " + c.Note)
		}
		fmt.Fprintf(tw, "  %s:\t%d ticks\t(%.1f ns, %.2f%%)\t%s\n",
			c.Label, c.Ticks, r.Nanos(c.Ticks), r.Percent(c.Ticks), note)
	}
	if len(r.Averages) > 0 {
		a := r.Averages[0]
		fmt.Fprintf(tw, "  %s:\t%d ticks\t(%.1f ns)\t\n", a.Label, a.Ticks, r.Nanos(a.Ticks))
	}
	fmt.Fprintf(tw, "  Throughput:\t%.2f tasks/sec\t\t\n", r.Throughput())
	switch r.Model {
	case ModelThreads:
		fmt.Fprintf(tw, "  Threads spawned/joined:\t%d/%d\t\t\n", r.Spawned, r.Joined)
		if r.OSThreads > 0 {
			fmt.Fprintf(tw, "  Distinct OS threads:\t%d\t\t\n", r.OSThreads)
		}
	case ModelGenerator:
		fmt.Fprintf(tw, "  Yield/Resume count:\t%d\t\t\n", r.Resumes)
	case ModelTask:
		if r.Violations > 0 {
			fmt.Fprintf(tw, "  Window violations:\t%d\t\t\n", r.Violations)
		}
	}
	for _, a := range r.Averages[min(1, len(r.Averages)):] {
		fmt.Fprintf(tw, "  %s:\t%d ticks\t(%.1f ns)\t\n", a.Label, a.Ticks, r.Nanos(a.Ticks))
	}
	return tw.Flush()
}

// All prints the banner followed by every report.
func (p *Printer) All(cfg Config, reports []*Report) error {
	if err := p.Banner(cfg); err != nil {
		return err
	}
	for _, r := range reports {
		if err := p.Report(r); err != nil {
			return err
		}
	}
	return nil
}
