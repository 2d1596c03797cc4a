// Package report renders filter verdicts and summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/poet/internal/model"
)

const terminalWidthBackup = 100

var (
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	namesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Options control verdict rendering.
type Options struct {
	Color bool
	// Width limits a rendered line; zero disables truncation.
	Width int
}

// VerdictLine renders one verdict as "FAIL name,name  text" or "PASS  text".
func VerdictLine(v model.Verdict, opts Options) string {
	var head string
	if v.Passed() {
		head = style(passStyle, "PASS", opts.Color)
	} else {
		head = style(failStyle, "FAIL", opts.Color) + " " +
			style(namesStyle, strings.Join(v.Flagged, ","), opts.Color)
	}
	text := v.Text
	if opts.Width > 0 {
		prefix := 4 + 2
		if !v.Passed() {
			prefix += 1 + displayWidth(strings.Join(v.Flagged, ","))
		}
		if avail := opts.Width - prefix; avail > 0 {
			text = runewidth.Truncate(text, avail, "...")
		}
	}
	return head + "  " + text
}

// SummaryLines renders a per-filter table of flagged counts out of total texts.
func SummaryLines(counts []model.FilterCount, passed, total int) []string {
	headers := []string{"Filter", "Flagged", "Share"}
	rows := make([][]string, 0, len(counts)+1)
	for _, c := range counts {
		rows = append(rows, []string{c.Name, fmt.Sprintf("%d", c.Flagged), share(c.Flagged, total)})
	}
	rows = append(rows, []string{"(passed)", fmt.Sprintf("%d", passed), share(passed, total)})
	return formatTable(headers, rows, map[int]bool{1: true, 2: true})
}

// WriteSummary writes SummaryLines to w, dimming the header when colored.
func WriteSummary(w io.Writer, counts []model.FilterCount, passed, total int, color bool) error {
	for i, line := range SummaryLines(counts, passed, total) {
		if i == 0 {
			line = style(mutedStyle, line, color)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(n)*100/float64(total))
}

func style(s lipgloss.Style, value string, color bool) string {
	if !color {
		return value
	}
	return s.Render(value)
}

// TerminalWidth returns the width of stdout or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return force || IsTerminal(w)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
