// Package console renders the user-facing ✅/❌ milestone and error output
// described in spec.md §7: every failure is a one-line stderr message
// prefixed ❌, every successful milestone a line prefixed ✅.
package console

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

func isTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}

func applyStyle(style lipgloss.Style, text string) string {
	if isTTY() {
		return style.Render(text)
	}
	return text
}

// FormatSuccessMessage formats a successful-milestone line.
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✅") + " " + message
}

// FormatErrorMessage formats an unrecoverable-failure line.
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "❌") + " " + message
}

// FormatWarningMessage formats a non-fatal warning line (e.g. a rescued
// partial-clone fetch failure that the caller will still attempt downstream).
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠") + " " + message
}

// FormatInfoMessage formats an informational progress line.
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ") + " " + message
}

// Success prints a success message to stderr.
func Success(format string, args ...any) {
	fmt.Fprintln(os.Stderr, FormatSuccessMessage(fmt.Sprintf(format, args...)))
}

// Error prints an error message to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, FormatErrorMessage(fmt.Sprintf(format, args...)))
}

// Warning prints a warning message to stderr.
func Warning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, FormatWarningMessage(fmt.Sprintf(format, args...)))
}

// Info prints an informational message to stderr.
func Info(format string, args ...any) {
	fmt.Fprintln(os.Stderr, FormatInfoMessage(fmt.Sprintf(format, args...)))
}
