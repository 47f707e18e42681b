package nfa

import "github.com/serrainoalessio/regex/syntax"

// MatcherKind identifies the type of a transition matcher.
type MatcherKind uint8

const (
	// MatchEpsilon consumes nothing and always matches.
	MatchEpsilon MatcherKind = iota

	// MatchChar consumes one character equal to a target byte.
	MatchChar

	// MatchAny consumes one character of any value.
	MatchAny

	// MatchClass consumes one character tested against a set of intervals,
	// xored with an invert flag.
	MatchClass
)

// Matcher guards a transition. Epsilon matchers have length 0; all others
// consume exactly one byte, which is what the powerset evaluator relies on.
// Matchers live in the NFA's pool and are referenced by index.
type Matcher struct {
	kind      MatcherKind
	c         byte
	invert    bool
	intervals []syntax.Interval
}

// EpsilonMatcher returns a matcher that consumes nothing.
func EpsilonMatcher() Matcher {
	return Matcher{kind: MatchEpsilon}
}

// CharMatcher returns a matcher for the single byte c.
func CharMatcher(c byte) Matcher {
	return Matcher{kind: MatchChar, c: c}
}

// AnyMatcher returns a matcher accepting every byte.
func AnyMatcher() Matcher {
	return Matcher{kind: MatchAny}
}

// ClassMatcher returns a matcher for a normalized character class. The
// interval slice is copied so the matcher does not alias the AST.
func ClassMatcher(invert bool, intervals []syntax.Interval) Matcher {
	ivs := make([]syntax.Interval, len(intervals))
	copy(ivs, intervals)
	return Matcher{kind: MatchClass, invert: invert, intervals: ivs}
}

// Kind returns the matcher's type.
func (m *Matcher) Kind() MatcherKind { return m.kind }

// IsEpsilon reports whether the matcher consumes no input.
func (m *Matcher) IsEpsilon() bool { return m.kind == MatchEpsilon }

// Len returns the number of bytes the matcher consumes: 0 or 1.
func (m *Matcher) Len() int {
	if m.kind == MatchEpsilon {
		return 0
	}
	return 1
}

// Match reports whether the matcher accepts the input suffix starting at pos.
// Epsilon accepts everywhere, including at end of input.
func (m *Matcher) Match(input []byte, pos int) bool {
	switch m.kind {
	case MatchEpsilon:
		return true
	case MatchChar:
		return pos < len(input) && input[pos] == m.c
	case MatchAny:
		return pos < len(input)
	case MatchClass:
		return pos < len(input) && m.matchClass(input[pos])
	}
	return false
}

// MatchByte reports whether a length-1 matcher accepts the byte c. Epsilon
// matchers report false: they are followed by closure, not by consumption.
func (m *Matcher) MatchByte(c byte) bool {
	switch m.kind {
	case MatchChar:
		return c == m.c
	case MatchAny:
		return true
	case MatchClass:
		return m.matchClass(c)
	}
	return false
}

func (m *Matcher) matchClass(c byte) bool {
	in := false
	for _, iv := range m.intervals {
		if iv.Contains(c) {
			in = true
			break
		}
	}
	return in != m.invert
}
