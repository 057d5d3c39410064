// Package split breaks a string on a delimiter while leaving delimiters that
// sit inside bracketed or quoted regions alone.
//
// Any number of opener/closer pairs can be tracked at once. Each pair keeps its
// own depth counter and a delimiter is only a split point when every counter
// sums to zero. A pair whose opener equals its closer (a quote mark, say)
// toggles: the first occurrence opens the region and the next one closes it.
//
//	s, _ := split.New(",", []string{"(", `"`}, []string{")", `"`})
//	s.Split(`a,(b,c),"d,e"`) // ["a", "(b,c)", `"d,e"`]
//
// Splitting itself never fails. Unbalanced input simply suppresses splitting
// for the rest of the string. Only the configuration is validated, once, when
// the Splitter is built.
package split

import (
	"strings"
	"unicode/utf8"

	"github.com/ismawno/convoy/pkg/errors"
)

// Pair is one opener/closer token pair.
type Pair struct {
	Opener string
	Closer string
}

// symmetric reports whether the pair toggles instead of nesting.
func (p Pair) symmetric() bool {
	return p.Opener == p.Closer
}

// Splitter holds a validated delimiter and pair set. It is immutable and safe
// for concurrent use; all scanning state lives in the call.
type Splitter struct {
	delim string
	pairs []Pair
}

// New builds a Splitter from parallel opener and closer lists.
func New(delim string, openers, closers []string) (*Splitter, error) {
	if len(openers) != len(closers) {
		return nil, errors.Newf(errors.ErrPairMismatch,
			"openers and closers length mismatch: openers [%s], closers [%s]",
			strings.Join(openers, ", "), strings.Join(closers, ", ")).
			WithDetail("openers", len(openers)).
			WithDetail("closers", len(closers))
	}

	pairs := make([]Pair, len(openers))
	for i := range openers {
		pairs[i] = Pair{Opener: openers[i], Closer: closers[i]}
	}
	return FromPairs(delim, pairs...)
}

// FromPairs builds a Splitter from explicit pairs.
func FromPairs(delim string, pairs ...Pair) (*Splitter, error) {
	if delim == "" {
		return nil, errors.New(errors.ErrDelimEmpty, "delimiter must not be empty")
	}
	if len(pairs) == 0 {
		return nil, errors.New(errors.ErrPairsEmpty, "both openers and closers must not be empty")
	}

	seen := make(map[string]int, len(pairs))
	for i, p := range pairs {
		if p.Opener == "" || p.Closer == "" {
			return nil, errors.Newf(errors.ErrTokenEmpty, "pair %d has an empty opener or closer", i).
				WithDetail("index", i)
		}
		if first, ok := seen[p.Opener]; ok {
			return nil, errors.Newf(errors.ErrPairDuplicate,
				"opener %q used by pairs %d and %d", p.Opener, first, i).
				WithDetail("opener", p.Opener)
		}
		seen[p.Opener] = i
	}

	return &Splitter{
		delim: delim,
		pairs: append([]Pair(nil), pairs...),
	}, nil
}

// Delimiter returns the configured delimiter.
func (s *Splitter) Delimiter() string {
	return s.delim
}

// Pairs returns a copy of the configured pairs.
func (s *Splitter) Pairs() []Pair {
	return append([]Pair(nil), s.pairs...)
}

// Split splits text at every top-level delimiter.
func (s *Splitter) Split(text string) []string {
	return s.SplitN(text, -1)
}

// SplitN splits text at no more than maxSplits top-level delimiters; a
// negative maxSplits means no limit. Once the limit is reached the untouched
// remainder of text becomes the last segment, so at most maxSplits+1 segments
// are returned. The final segment is always present, even when empty.
func (s *Splitter) SplitN(text string, maxSplits int) []string {
	var result []string
	depths := make([]int, len(s.pairs))
	start := 0

	for i := 0; i < len(text); {
		if maxSplits >= 0 && len(result) == maxSplits {
			// start == i here: the cap can only be reached right after a split.
			return append(result, text[start:])
		}

		rest := text[i:]
		total := 0
		for j, p := range s.pairs {
			switch {
			case strings.HasPrefix(rest, p.Opener):
				if !p.symmetric() || depths[j] == 0 {
					depths[j]++
				} else {
					depths[j]--
				}
			case strings.HasPrefix(rest, p.Closer):
				depths[j]--
			}
			total += depths[j]
		}

		if total == 0 && strings.HasPrefix(rest, s.delim) {
			result = append(result, text[start:i])
			i += len(s.delim)
			start = i
			continue
		}

		_, size := utf8.DecodeRuneInString(rest)
		i += size
	}

	return append(result, text[start:])
}

// Split is a one-shot form of New followed by (*Splitter).Split.
func Split(text, delim string, openers, closers []string) ([]string, error) {
	return SplitN(text, delim, openers, closers, -1)
}

// SplitN is a one-shot form of New followed by (*Splitter).SplitN.
func SplitN(text, delim string, openers, closers []string, maxSplits int) ([]string, error) {
	s, err := New(delim, openers, closers)
	if err != nil {
		return nil, err
	}
	return s.SplitN(text, maxSplits), nil
}
