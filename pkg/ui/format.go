package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects whether markup is expanded into escape codes
type ColorMode int

const (
	// ColorAuto enables color when the output is a color capable terminal
	ColorAuto ColorMode = iota
	// ColorAlways forces escape codes
	ColorAlways
	// ColorNever strips markup
	ColorNever
)

// String returns the string representation of the color mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a string into a ColorMode value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "on", "yes":
		return ColorAlways, nil
	case "never", "off", "no":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode: %s", s)
	}
}

// UseColor resolves a mode against the writer output goes to. In auto mode
// only an *os.File can qualify; anything else is treated as a pipe.
func UseColor(mode ColorMode, output io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	file, ok := output.(*os.File)
	if !ok {
		return false
	}
	return DetectColor(file)
}

// DetectColor determines whether output can display escape codes
func DetectColor(output *os.File) bool {
	// https://no-color.org
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}

	// Check if we're being piped or redirected
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}

	return termenv.ColorProfile() != termenv.Ascii
}

// Format represents the output format for split results
type Format int

const (
	// FormatLines writes one segment per line
	FormatLines Format = iota
	// FormatJSON writes one JSON array per input record
	FormatJSON
	// FormatYAML writes one YAML document per input record
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatLines:
		return "lines"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "lines", "text", "":
		return FormatLines, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatLines, fmt.Errorf("unknown format: %s", s)
	}
}
