// Package regex implements a byte-oriented regular expression engine.
//
// A pattern is parsed into an abstract syntax tree, normalized under
// semantic-preserving rewrites, and lowered into a Thompson NFA whose
// transitions carry capture-group annotations. Two evaluators run over the
// automaton: a powerset (subset construction) pass that decides membership,
// and a backtracking pass that records capture spans.
//
// The dialect is deliberately small: literals, '.', character classes,
// alternation, greedy and lazy quantifiers ('*', '+', '?', '{m}', '{m,}',
// '{m,n}'), '^'/'$' anchors, non-capturing groups '(...)' and capturing
// groups '<...>'. Input is a sequence of single-byte characters.
//
// Basic usage:
//
//	re, err := regex.Compile(`<[a-z.]+>@<[a-z.]+>`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("john.doe@example.com") {
//	    groups := re.FindStringSubmatch("john.doe@example.com")
//	    fmt.Println(groups[1], groups[2]) // "john.doe" "example.com"
//	}
package regex

import (
	"github.com/serrainoalessio/regex/nfa"
	"github.com/serrainoalessio/regex/prefilter"
	"github.com/serrainoalessio/regex/syntax"
)

// Regex is a compiled pattern. It is immutable and safe for concurrent use:
// the evaluators are pure functions of (automaton, input) and allocate only
// call-local scratch.
type Regex struct {
	pattern string
	ast     *syntax.AST
	nfa     *nfa.NFA
	filter  *prefilter.Prefilter
}

// Compile compiles a pattern with the default configuration.
//
// Example:
//
//	re, err := regex.Compile(`a{2,4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is Compile for patterns known to be valid; it panics on error.
//
// Example:
//
//	var emailRe = regex.MustCompile(`<[a-z.]+>@<[a-z.]+>`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := regex.DefaultConfig()
//	config.OptimizeAST = false
//	re, err := regex.CompileWithConfig(`(a|b)*`, config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	ast, err := syntax.Parse(pattern, config.OptimizeAST)
	if err != nil {
		return nil, err
	}
	re := &Regex{
		pattern: pattern,
		ast:     ast,
		nfa:     nfa.Compile(ast, config.ReduceNFA),
	}
	if config.Prefilter {
		if f, ok := prefilter.FromAST(ast, config.PrefilterLimits); ok {
			re.filter = f
		}
	}
	return re, nil
}

// String returns the source text the pattern was compiled from.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capture groups, the whole match included:
// explicit '<...>' groups plus one for group 0.
func (r *Regex) NumSubexp() int {
	return r.nfa.GroupCount()
}

// AST returns the parsed (and possibly normalized) expression tree.
func (r *Regex) AST() *syntax.AST {
	return r.ast
}

// NFA returns the compiled automaton.
func (r *Regex) NFA() *nfa.NFA {
	return r.nfa
}

// Match reports whether b matches the pattern, honoring the pattern's
// anchors. This runs the powerset evaluator and computes no captures.
func (r *Regex) Match(b []byte) bool {
	if r.filter != nil && !r.filter.CanMatch(b) {
		return false
	}
	return r.nfa.Powerset(b)
}

// MatchString reports whether s matches the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// FindSubmatch returns the matched text and the text of every capture
// group, or nil when the input does not match. Result[0] is the whole
// match; a group never traversed yields a nil entry.
//
// Example:
//
//	re := regex.MustCompile(`<[a-z.]+>@<[a-z.]+>`)
//	m := re.FindSubmatch([]byte("john.doe@example.com"))
//	// m[0] = "john.doe@example.com", m[1] = "john.doe", m[2] = "example.com"
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	spans := r.submatch(b)
	if spans == nil {
		return nil
	}
	out := make([][]byte, len(spans))
	for i, s := range spans {
		if s.Matched() {
			out[i] = b[s.Start:s.End]
		}
	}
	return out
}

// FindStringSubmatch is FindSubmatch on a string input; absent groups yield
// empty strings.
func (r *Regex) FindStringSubmatch(s string) []string {
	b := []byte(s)
	spans := r.submatch(b)
	if spans == nil {
		return nil
	}
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = sp.Of(b)
	}
	return out
}

// FindSubmatchIndex returns the start/end index pairs of the match and of
// every capture group, flattened as in the stdlib: result[2*g:2*g+2] is
// group g, with -1 pairs for absent groups. Returns nil when the input does
// not match.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	spans := r.submatch(b)
	if spans == nil {
		return nil
	}
	out := make([]int, 0, len(spans)*2)
	for _, s := range spans {
		out = append(out, s.Start, s.End)
	}
	return out
}

// submatch runs the backtracking evaluator behind the prefilter.
func (r *Regex) submatch(b []byte) []nfa.Span {
	if r.filter != nil && !r.filter.CanMatch(b) {
		return nil
	}
	return r.nfa.Simulate(b)
}

// QuoteMeta escapes every metacharacter of this dialect in s, yielding a
// pattern that matches the literal text.
//
// Example:
//
//	re := regex.MustCompile(regex.QuoteMeta("a.b*c"))
//	re.MatchString("a.b*c") // true
func QuoteMeta(s string) string {
	const special = `.*+?()<>[]{}|\^$`
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
