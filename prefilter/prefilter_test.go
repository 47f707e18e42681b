package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serrainoalessio/regex/nfa"
	"github.com/serrainoalessio/regex/syntax"
)

func extractFor(t *testing.T, pattern string) ([][]byte, bool) {
	t.Helper()
	ast, err := syntax.Parse(pattern, true)
	require.NoError(t, err)
	return Extract(ast, DefaultConfig())
}

func asStrings(lits [][]byte) []string {
	out := make([]string, len(lits))
	for i, l := range lits {
		out[i] = string(l)
	}
	return out
}

func TestExtract_LiteralRun(t *testing.T) {
	lits, ok := extractFor(t, "hello.*world")
	require.True(t, ok)
	assert.Equal(t, []string{"hello"}, asStrings(lits))
}

func TestExtract_PicksLongestRun(t *testing.T) {
	lits, ok := extractFor(t, "ab.*wxyz")
	require.True(t, ok)
	assert.Equal(t, []string{"wxyz"}, asStrings(lits))
}

func TestExtract_Alternation(t *testing.T) {
	lits, ok := extractFor(t, "foo|bar|baz")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"foo", "bar", "baz"}, asStrings(lits))
}

func TestExtract_AlternationWithEscape(t *testing.T) {
	// A branch with no required literal leaves the whole alternation
	// unfilterable.
	_, ok := extractFor(t, "foo|a*")
	assert.False(t, ok)
}

func TestExtract_PlusAndRepeat(t *testing.T) {
	lits, ok := extractFor(t, "x+")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, asStrings(lits))

	lits, ok = extractFor(t, "q{2,5}")
	require.True(t, ok)
	assert.Equal(t, []string{"q"}, asStrings(lits))

	_, ok = extractFor(t, "q{0,5}")
	assert.False(t, ok, "min 0 requires nothing")
}

func TestExtract_SmallClassExpansion(t *testing.T) {
	lits, ok := extractFor(t, "[abc]")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, asStrings(lits))

	_, ok = extractFor(t, "[a-z]")
	assert.False(t, ok, "wide classes are not expanded")

	_, ok = extractFor(t, "[^a]")
	assert.False(t, ok, "inverted classes are not expanded")
}

func TestExtract_NothingRequired(t *testing.T) {
	for _, pattern := range []string{"", ".*", "a*", "a?", ".+"} {
		_, ok := extractFor(t, pattern)
		assert.False(t, ok, "pattern %q", pattern)
	}
}

func TestExtract_Group(t *testing.T) {
	lits, ok := extractFor(t, "<abc>")
	require.True(t, ok)
	assert.Equal(t, []string{"abc"}, asStrings(lits))
}

func TestPrefilter_Rejects(t *testing.T) {
	ast, err := syntax.Parse("hello.*world", true)
	require.NoError(t, err)
	f, ok := FromAST(ast, DefaultConfig())
	require.True(t, ok)

	assert.True(t, f.CanMatch([]byte("say hello there")))
	assert.False(t, f.CanMatch([]byte("nothing of note")))
}

// The filter is a necessary condition: whenever the engine matches, the
// prefilter must have said yes.
func TestPrefilter_NeverFalselyRejects(t *testing.T) {
	patterns := []string{
		"hello.*world", "foo|bar", "x+y?", "<ab>c{2}", "a[bc]d",
		"[abc]x", "ab|c[de]f",
	}
	inputs := []string{
		"", "hello world", "hello cruel world", "foo", "xbar", "xxy", "xy",
		"abcc", "abd", "acd", "ax", "cx", "ab", "cdf", "cef", "zzz",
	}
	for _, pattern := range patterns {
		ast, err := syntax.Parse(pattern, true)
		require.NoError(t, err)
		f, ok := FromAST(ast, DefaultConfig())
		if !ok {
			continue
		}
		n := nfa.Compile(ast, true)
		for _, input := range inputs {
			if n.PowersetString(input) {
				assert.True(t, f.CanMatch([]byte(input)),
					"prefilter rejected a matching input: pattern %q input %q", pattern, input)
			}
		}
	}
}
