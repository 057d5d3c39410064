package style

import "strings"

// Render expands the style tags in text.
//
// An opening tag emits its escape code. A closing tag emits Reset followed by
// the codes of every style still open, since Reset clears all attributes and
// the outer styles have to be put back. Styles are re-applied in the order
// they were opened. A closing tag for a style that is not open is consumed
// without changing the active set. Unknown tags are kept verbatim. The result
// always ends with Reset so unclosed tags cannot leak past the string.
//
// With void set, tags are removed and no escape codes are written at all.
func Render(text string, void bool) string {
	spans := strings.Split(text, "<")

	var b strings.Builder
	b.Grow(len(text))
	b.WriteString(spans[0])

	var active activeSet
	for _, span := range spans[1:] {
		name, rest, closing, ok := parseTag(span)
		if !ok {
			b.WriteByte('<')
			b.WriteString(span)
			continue
		}

		code := table[name]
		if closing {
			active.remove(code)
			if !void {
				b.WriteString(Reset)
				active.writeTo(&b)
			}
		} else {
			active.add(code)
			if !void {
				b.WriteString(code)
			}
		}
		b.WriteString(rest)
	}

	if !void {
		b.WriteString(Reset)
	}
	return b.String()
}

// Expand is Render with escape codes.
func Expand(text string) string {
	return Render(text, false)
}

// Strip is Render in void mode: the tags are removed and nothing is added.
func Strip(text string) string {
	return Render(text, true)
}

// parseTag reports whether span (the text following a '<') starts with a
// known "name>" or "/name>" and splits off the remainder.
func parseTag(span string) (name, rest string, closing, ok bool) {
	body := span
	if strings.HasPrefix(body, "/") {
		closing = true
		body = body[1:]
	}

	end := strings.IndexByte(body, '>')
	if end < 0 {
		return "", "", false, false
	}

	name = body[:end]
	if _, known := table[name]; !known {
		return "", "", false, false
	}
	return name, body[end+1:], closing, true
}

// activeSet is an insertion-ordered set of escape codes.
type activeSet struct {
	codes []string
}

func (s *activeSet) add(code string) {
	for _, c := range s.codes {
		if c == code {
			return
		}
	}
	s.codes = append(s.codes, code)
}

func (s *activeSet) remove(code string) {
	for i, c := range s.codes {
		if c == code {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			return
		}
	}
}

func (s *activeSet) writeTo(b *strings.Builder) {
	for _, c := range s.codes {
		b.WriteString(c)
	}
}
