package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_Rendering(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"abc", "abc"},
		{"^a$", "^a$"},
		{"a|b", "a|b"},
		{"a*?", "a*?"},
		{"a{2,4}", "a{2,4}"},
		{"a{2,}", "a{2,}"},
		{"a{3}", "a{3}"},
		{"<ab>", "<ab>"},
		{"[a-z0-9]", "[0-9a-z]"}, // intervals print in normalized order
		{"[^a-z]", "[^a-z]"},
		{`\.`, `\.`},
		{"(ab)*", "(ab)*"}, // concat under a quantifier needs parentheses
		{"(a|b)c", "(a|b)c"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			ast := mustParse(t, tt.pattern, true)
			assert.Equal(t, tt.want, ast.String())
		})
	}
}

func TestString_LazyClarification(t *testing.T) {
	// Optional over a greedy quantifier must parenthesize the child, or the
	// printed '?' would re-parse as the quantifier's lazy suffix. Repeat
	// children are the surviving case: they never fuse with Optional.
	ast := mustParse(t, "(a{2,3})?", true)
	require.Equal(t, "(a{2,3})?", ast.String())

	// Without the flip hazard (lazy child) no parentheses are needed.
	ast = mustParse(t, "(a{2,3}?)?", true)
	require.Equal(t, "a{2,3}??", ast.String())
}

// Printing is a left inverse of parsing: parse(print(parse(p))) == parse(p).
func TestString_RoundTrip(t *testing.T) {
	patterns := []string{
		"", "a", "abc", ".", "a.c",
		"^abc$", "^$", "a|b|c", "ab|cd|", "(a|b)*abb",
		"a*", "a+?", "a??", "a{2}", "a{2,}?", "a{2,4}",
		"[a-z]", "[^a-z0-9]", "[a^]", `[\]\-]`, "[$.]",
		"<a>", "<a|b>+", "(<a>|<b>)c", "<<a>b>",
		`\.\*\+\?\(\)\<\>\[\]\{\}\|\\`, `a\$`,
		"<[a-zA-Z0-9._%+\\-]+>@<[a-zA-Z0-9.\\-]+\\.[a-zA-Z]{2,}>",
		`^<[_a-zA-Z0-9\-]+>://(<[^@:/]+>(:<[^@:/]+>)?@)?<[^@:/]+\.[^@:/]+>(:<[0-9]+>)?(/<.*?>(\?<.*>)?)?$`,
		"a**", "a*??", "(a+)*b?", "x{0}y{1}z{2}",
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			first := mustParse(t, pattern, true)
			printed := first.String()
			second, err := Parse(printed, true)
			require.NoError(t, err, "printed form %q does not parse", printed)
			assert.True(t, Equal(first, second),
				"round trip changed the AST: %q -> %q", pattern, printed)
			// And printing is stable from here on.
			assert.Equal(t, printed, second.String())
		})
	}
}

func TestEqual(t *testing.T) {
	a := mustParse(t, "a|b*", true)
	b := mustParse(t, "a|b*", true)
	c := mustParse(t, "a|b+", true)
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))

	// Anchors participate in equality.
	anchored := mustParse(t, "^a|b*", true)
	assert.False(t, Equal(a, anchored))

	// Greediness participates.
	lazy := mustParse(t, "a|b*?", true)
	assert.False(t, Equal(a, lazy))
}
