// Package textcase converts identifiers between naming conventions.
package textcase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Snake converts "fooBar" and "foo-bar" to "foo_bar".
func Snake(s string) string {
	return separate(s, '_', '-')
}

// Kebab converts "fooBar" and "foo_bar" to "foo-bar".
func Kebab(s string) string {
	return separate(s, '-', '_')
}

// separate lowers every upper-case letter, putting sep in front of it unless
// it starts the string, and turns other into sep.
func separate(s string, sep, other rune) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if b.Len() > 0 {
				b.WriteRune(sep)
			}
			b.WriteRune(unicode.ToLower(r))
		case r == other:
			b.WriteRune(sep)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Pascal converts "foo_bar" and "foo-bar" to "FooBar". Letters inside a word
// keep their case.
func Pascal(s string) string {
	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	b.Grow(len(s))
	for _, word := range words(s) {
		b.WriteString(title.String(word))
	}
	return b.String()
}

// Camel converts "foo_bar" and "FooBar" to "fooBar".
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return p
	}
	r, size := utf8.DecodeRuneInString(p)
	return string(unicode.ToLower(r)) + p[size:]
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})
}
