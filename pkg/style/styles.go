// Package style turns lightweight inline markup into terminal escape codes.
//
// Markup is made of tags named after entries of a fixed style table:
//
//	<bold>Build</bold> finished with <fred>2 errors</fred>
//
// Tag names come from canonical SGR identifiers: foreground colors get an
// "f" prefix, background colors a "b" prefix, and bright variants one more
// "b". So FG_RED is <fred>, BG_BRIGHT_GREEN is <bbgreen> and UNDERLINE is
// <underline>. Anything that does not name a known style is left as text.
//
// Render with void set strips the tags instead, for output that cannot show
// colors.
package style

import (
	"strings"

	"github.com/muesli/termenv"
)

// SGR attribute sequences.
const (
	Reset         = termenv.CSI + termenv.ResetSeq + "m"
	Bold          = termenv.CSI + termenv.BoldSeq + "m"
	Dim           = termenv.CSI + termenv.FaintSeq + "m"
	Italic        = termenv.CSI + termenv.ItalicSeq + "m"
	Underline     = termenv.CSI + termenv.UnderlineSeq + "m"
	Blink         = termenv.CSI + termenv.BlinkSeq + "m"
	Reverse       = termenv.CSI + termenv.ReverseSeq + "m"
	Hidden        = termenv.CSI + "8m"
	Strikethrough = termenv.CSI + termenv.CrossOutSeq + "m"

	FgDefault = termenv.CSI + "39m"
	BgDefault = termenv.CSI + "49m"
)

// Identifier is a canonical style name such as FG_BRIGHT_RED.
type Identifier string

type entry struct {
	id   Identifier
	code string
}

var palette = []struct {
	name  string
	color termenv.ANSIColor
}{
	{"BLACK", termenv.ANSIBlack},
	{"RED", termenv.ANSIRed},
	{"GREEN", termenv.ANSIGreen},
	{"YELLOW", termenv.ANSIYellow},
	{"BLUE", termenv.ANSIBlue},
	{"MAGENTA", termenv.ANSIMagenta},
	{"CYAN", termenv.ANSICyan},
	{"WHITE", termenv.ANSIWhite},
}

var (
	// entries in canonical order
	entries []entry
	// tag name -> escape code
	table map[string]string
	// tag names in canonical order
	names []string
)

func init() {
	entries = []entry{
		{"RESET", Reset},
		{"BOLD", Bold},
		{"DIM", Dim},
		{"ITALIC", Italic},
		{"UNDERLINE", Underline},
		{"BLINK", Blink},
		{"REVERSE", Reverse},
		{"HIDDEN", Hidden},
		{"STRIKETHROUGH", Strikethrough},
	}

	// Bright variants sit 8 slots above their base color in the ANSI palette.
	for _, bg := range []bool{false, true} {
		layer := "FG_"
		def := FgDefault
		if bg {
			layer = "BG_"
			def = BgDefault
		}
		for _, c := range palette {
			entries = append(entries, entry{Identifier(layer + c.name), sgr(c.color.Sequence(bg))})
		}
		entries = append(entries, entry{Identifier(layer + "DEFAULT"), def})
		for _, c := range palette {
			bright := c.color + 8
			entries = append(entries, entry{Identifier(layer + "BRIGHT_" + c.name), sgr(bright.Sequence(bg))})
		}
	}

	table = make(map[string]string, len(entries))
	names = make([]string, 0, len(entries))
	for _, e := range entries {
		name := TagName(e.id)
		table[name] = e.code
		names = append(names, name)
	}
}

func sgr(params string) string {
	return termenv.CSI + params + "m"
}

// TagName derives the markup tag name for a canonical identifier.
func TagName(id Identifier) string {
	s := string(id)
	prefix := ""
	if strings.HasPrefix(s, "FG_") {
		prefix += "f"
	} else if strings.HasPrefix(s, "BG_") {
		prefix += "b"
	}
	if strings.Contains(s, "BRIGHT") {
		prefix += "b"
	}

	s = strings.TrimPrefix(s, "FG_")
	s = strings.TrimPrefix(s, "BG_")
	s = strings.TrimPrefix(s, "BRIGHT_")
	return prefix + strings.ToLower(s)
}

// Lookup returns the escape code for a tag name.
func Lookup(name string) (string, bool) {
	code, ok := table[name]
	return code, ok
}

// Names returns every recognised tag name in canonical order.
func Names() []string {
	return append([]string(nil), names...)
}

// Identifiers returns every canonical identifier in canonical order.
func Identifiers() []Identifier {
	ids := make([]Identifier, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}
