package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerset_Membership(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{"abc", "abc", true},
		{"abc", "zzabczz", true},
		{"abc", "ab", false},
		{"^abc$", "abc", true},
		{"^abc$", "zabc", false},
		{"a|b|c", "c", true},
		{"(a|b)*", "abba", true},
		{"(a|b)*", "", true},
		{"^(a|b)+$", "abc", false},
		{"^a{2,4}$", "aaa", true},
		{"^a{2,4}$", "aaaaa", false},
		{"a{2,4}", "aaaaa", true}, // unanchored: a window of 2..4 a's exists
		{"[0-9]+", "port 8080", true},
		{"[^0-9]", "123", false},
		{".+", "", false},
		{"", "", true},
		{"", "anything", true}, // unanchored epsilon matches everywhere
	}
	for _, tt := range tests {
		for _, optimize := range []bool{false, true} {
			n := compilePattern(t, tt.pattern, optimize)
			assert.Equal(t, tt.match, n.PowersetString(tt.input),
				"pattern %q input %q optimize=%v", tt.pattern, tt.input, optimize)
		}
	}
}

// Powerset and Simulate must agree on membership for every pattern/input
// pair, optimized or not: simulate(s) != nil <=> powerset(s).
func TestPowerset_AgreesWithSimulate(t *testing.T) {
	patterns := []string{
		"", "a", "ab", "a|b", "ab|cd|", "a*b", "a+?b", "a??",
		"(a|b)*abb", "<a|b>*", "^a*$", "a{2,4}", "^a{2,4}$", "a{3}b{0,2}",
		"[a-c]+[0-9]?", "[^ab]*", ".*x.*", "(a*)*b",
		"<[a-zA-Z0-9._%+\\-]+>@<[a-zA-Z0-9.\\-]+\\.[a-zA-Z]{2,}>",
	}
	inputs := []string{
		"", "a", "b", "ab", "ba", "abb", "aab", "abba", "aaab",
		"aaaa", "aaaaa", "cd", "abcd", "x", "axb", "a1", "c2c",
		"john.doe@example.com", "@example.com",
	}
	for _, pattern := range patterns {
		for _, optimize := range []bool{false, true} {
			n := compilePattern(t, pattern, optimize)
			for _, input := range inputs {
				sim := n.SimulateString(input) != nil
				pow := n.PowersetString(input)
				assert.Equal(t, sim, pow,
					"pattern %q input %q optimize=%v: simulate=%v powerset=%v",
					pattern, input, optimize, sim, pow)
			}
		}
	}
}

// Small generated corpus in the spirit of the reference test vectors:
// every quantifier (greedy and lazy) stacked up to depth two over 'a', with
// optional b/c decorations and anchors.
func TestPowerset_GeneratedCorpus(t *testing.T) {
	quants := []string{"*", "+", "?", "*?", "+?", "??"}
	var patterns []string
	for _, q1 := range quants {
		patterns = append(patterns, "a"+q1)
		for _, q2 := range quants {
			// A '?'-leading quantifier after another re-binds as lazy; wrap
			// in a group the way the reference generator does.
			patterns = append(patterns, "(a"+q1+")"+q2)
		}
	}
	var decorated []string
	for _, p := range patterns {
		decorated = append(decorated, p, "b"+p, p+"c", "^"+p+"$")
	}

	inputs := []string{"", "a", "aa", "aaa", "b", "ba", "baa", "ac", "aac", "bac", "c"}

	for _, pattern := range decorated {
		unopt := compilePattern(t, pattern, false)
		opt := compilePattern(t, pattern, true)
		assert.NoError(t, opt.Check(), "pattern %q", pattern)
		for _, input := range inputs {
			resultUnopt := unopt.PowersetString(input)
			resultOpt := opt.PowersetString(input)
			assert.Equal(t, resultUnopt, resultOpt,
				"optimization changed verdict: pattern %q input %q", pattern, input)
			assert.Equal(t, resultUnopt, unopt.SimulateString(input) != nil,
				"evaluators disagree: pattern %q input %q (unoptimized)", pattern, input)
			assert.Equal(t, resultOpt, opt.SimulateString(input) != nil,
				"evaluators disagree: pattern %q input %q (optimized)", pattern, input)
			if input == "" {
				ast := mustParseAST(t, pattern)
				assert.Equal(t, ast.AcceptsEpsilon(), resultOpt,
					"empty-input acceptance: pattern %q", pattern)
			}
		}
	}
}
