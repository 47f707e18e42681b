package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/serrainoalessio/regex/syntax"
)

// Prefilter answers "can this input possibly match" for one pattern using an
// Aho-Corasick automaton over the pattern's required literals. It is
// immutable after construction and safe for concurrent use.
type Prefilter struct {
	auto     *ahocorasick.Automaton
	literals [][]byte
}

// FromAST builds a prefilter for the pattern, or reports ok=false when the
// pattern yields no useful literal set (the pattern then runs unfiltered).
func FromAST(ast *syntax.AST, cfg Config) (*Prefilter, bool) {
	literals, ok := Extract(ast, cfg)
	if !ok {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Prefilter{auto: auto, literals: literals}, true
}

// CanMatch reports whether input contains at least one required literal.
// false means the pattern definitely does not match; true decides nothing.
func (p *Prefilter) CanMatch(input []byte) bool {
	return p.auto.IsMatch(input)
}

// Literals returns the extracted literal set, mainly for inspection in
// tests. The slice is shared and must not be modified.
func (p *Prefilter) Literals() [][]byte {
	return p.literals
}
