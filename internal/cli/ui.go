package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/slidefit/pkg/pipeline"
)

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Exported styles are shared with other commands' help and banners.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
)

// A marker prefixes a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = marker{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markError   = marker{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarning = marker{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

// stdout receives all status output.
var stdout io.Writer = os.Stdout

func status(m marker, text string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+text)
}

func printSuccess(format string, args ...any) {
	status(markSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(markError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printStats prints a one-line summary such as
// "12 slides · 9 figures · 1 overflowing · cached".
func printStats(stats pipeline.Stats, cached bool) {
	fmt.Fprintln(stdout, "  "+statsLine(stats, cached))
}

func statsLine(stats pipeline.Stats, cached bool) string {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d slides", stats.Slides)),
		StyleDim.Render(fmt.Sprintf("%d figures", stats.Figures)),
	}
	if stats.Overflowing > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d overflowing", stats.Overflowing)))
	}
	if cached {
		parts = append(parts, markSuccess.style.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
