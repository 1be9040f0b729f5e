package cli

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/supernova/pkg/style"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("214") // amber, the default openness hue
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(18)
	styleCached  = lipgloss.NewStyle().Foreground(colorOK)
	styleRefresh = lipgloss.NewStyle().Foreground(colorMuted)
)

// statusMark is the leading glyph of a one-line status message.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = statusMark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail = statusMark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn = statusMark{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo = statusMark{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

func (m statusMark) println(body string) {
	fmt.Println(m.style.Render(m.glyph) + " " + body)
}

// =============================================================================
// Output helpers
// =============================================================================

func printSuccess(format string, args ...any) { markOK.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markFail.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarn.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printSwatch prints a trait color as a filled block followed by its hex code.
func printSwatch(name string, c color.NRGBA) {
	hex := style.Hex(c)
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(style.Hex(style.WithAlpha(c, 1)))).Render("██")
	fmt.Println(styleKey.Render(name) + " " + block + " " + StyleValue.Render(hex))
}

// printStats prints triangle count, artifact size and cache state on one line.
func printStats(triangles, size int, cached bool) {
	state := styleRefresh.Render("fresh")
	if cached {
		state = styleCached.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf("%d triangles", triangles)) + sep +
		StyleDim.Render(formatBytes(size)) + sep + state)
}

// formatBytes renders n with a binary unit.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

func printNewline() { fmt.Println() }
