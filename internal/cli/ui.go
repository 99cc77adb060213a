package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/menulink/pkg/link"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings and record titles.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleLink renders deep links and server addresses.
	StyleLink   = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleWarning     = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(8)
)

// status line prefixes
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	iconWarning = styleWarning.Render("!")
	iconInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
	iconArrow   = StyleDim.Render("→")
)

// Batch workers print concurrently; each line goes out in one locked write.
var (
	outMu sync.Mutex
	out   io.Writer = os.Stdout
)

func emit(line string) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintln(out, line)
}

func printSuccess(format string, args ...any) {
	emit(iconSuccess + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	emit(iconError + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	emit(iconWarning + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	emit(iconInfo + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	emit("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file path.
func printFile(path string) {
	emit("  " + iconArrow + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	emit(styleKey.Render(key) + " " + value)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	emit(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printRecord prints a generated link with its labels.
func printRecord(rec *link.Record) {
	emit(StyleTitle.Render(rec.Title))
	printKeyValue("Name", StyleValue.Render(rec.Name))
	printKeyValue("Scope", StyleValue.Render(string(rec.Scope)))
	printKeyValue("URL", StyleLink.Render(rec.URL))
	printKeyValue("ID", StyleDim.Render(rec.ID))
}

func printNewline() {
	emit("")
}
