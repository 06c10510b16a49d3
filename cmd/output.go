package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gorcc/internal/config"
	"github.com/alexiusacademia/gorcc/internal/optional"
)

const (
	doubleRule = "═══════════════════════════════════════════════════════════════"
	singleRule = "───────────────────────────────────────────────────────────────"
)

var (
	approvedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	rejectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	naStyle       = lipgloss.NewStyle().Faint(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// writeStructured encodes v when the output format is json or yaml and
// reports whether it did.
func writeStructured(w io.Writer, v interface{}) (bool, error) {
	switch cfg.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func printHeading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleRule)
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", max((len([]rune(doubleRule))-len([]rune(title)))/2, 0)), title)
	fmt.Fprintln(w, doubleRule)
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, singleRule)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderVerdict(v optional.Value[bool]) string {
	ok, defined := v.Get()
	switch {
	case !defined:
		return naStyle.Render("NO VERDICT (" + v.Reason() + ")")
	case ok:
		return approvedStyle.Render("APPROVED ✓")
	default:
		return rejectedStyle.Render("NOT APPROVED ✗")
	}
}

// cm2 formats an area given in m² as cm².
func cm2(v optional.Value[float64]) string {
	return optional.Map(v, func(m2 float64) float64 { return m2 * 1e4 }).Text("%.2f cm²")
}
