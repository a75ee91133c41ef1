package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Level represents the severity of a message.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// MessageOptions configures formatted diagnostic output.
type MessageOptions struct {
	Level        Level
	Context      string   // short uppercase tag, e.g. "UNKNOWN TYPE"
	Problem      string   // one-line description
	Suggestions  []string // candidate names for "Did you mean"
	HelpCommands []string // follow-up commands to print
	NoColor      bool
}

// FormatMessage renders a diagnostic with optional suggestions and help
// commands.
//
// Example output:
//
//	✗ UNKNOWN TYPE: strr
//
//	   Did you mean: str, string?
//
//	   → List built-in types: gemc inspect --types
func FormatMessage(opts MessageOptions) string {
	var b strings.Builder

	var headerColor *color.Color
	var symbol string
	switch opts.Level {
	case LevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		symbol = "!"
	case LevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		symbol = "i"
	default:
		headerColor = color.New(color.FgRed, color.Bold)
		symbol = "✗"
	}
	if opts.NoColor {
		headerColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if len(opts.Suggestions) > 0 {
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteMessage writes a formatted diagnostic to the writer.
func WriteMessage(w io.Writer, opts MessageOptions) {
	fmt.Fprint(w, FormatMessage(opts))
}

// FormatSuccess creates a success line.
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success line to the writer.
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// UnknownTypeMessage builds the diagnostic for an unresolvable type name,
// with close matches from the registry and declared models.
func UnknownTypeMessage(typeName string, suggestions []string, noColor bool) string {
	return FormatMessage(MessageOptions{
		Level:       LevelError,
		Context:     "UNKNOWN TYPE",
		Problem:     fmt.Sprintf("Cannot resolve type '%s'.", typeName),
		Suggestions: suggestions,
		HelpCommands: []string{
			"List built-in types: gemc inspect --types",
			"Get help: gemc check --help",
		},
		NoColor: noColor,
	})
}
