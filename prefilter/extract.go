// Package prefilter extracts required literals from a parsed pattern and
// uses a multi-pattern automaton to reject inputs that cannot possibly
// match, before any evaluator runs.
//
// The extracted set is a necessary condition: every match of the pattern
// contains at least one of the literals. The filter therefore never rejects
// a matching input; a positive answer decides nothing.
package prefilter

import "github.com/serrainoalessio/regex/syntax"

// Config bounds literal extraction.
//
// The limits keep degenerate patterns from exploding the literal set:
// alternations with many branches, very long literal runs, and wide
// character classes.
type Config struct {
	// MaxLiterals caps the size of the extracted set. Extraction fails
	// beyond it and the pattern runs unfiltered.
	MaxLiterals int

	// MaxLiteralLen truncates long literal runs. A prefix of a required
	// literal is still required, so truncation stays sound.
	MaxLiteralLen int

	// MaxClassSize is the widest character class expanded into single-byte
	// literals. Wider classes stop extraction at that branch.
	MaxClassSize int
}

// DefaultConfig returns extraction limits suitable for typical patterns.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extract returns a set of literals such that every string matched by the
// AST contains at least one of them. ok is false when no such set within the
// limits exists, in which case the pattern must run unfiltered.
func Extract(ast *syntax.AST, cfg Config) (literals [][]byte, ok bool) {
	lits, ok := extract(ast.Root, cfg)
	if !ok || len(lits) == 0 {
		return nil, false
	}
	return dedupe(lits), true
}

func extract(n syntax.Node, cfg Config) ([][]byte, bool) {
	switch t := n.(type) {
	case *syntax.Literal:
		return [][]byte{{t.C}}, true

	case *syntax.Class:
		return expandClass(t, cfg)

	case *syntax.Group:
		return extract(t.Child, cfg)

	case *syntax.Plus:
		// At least one occurrence, so the child's literals are required.
		return extract(t.Child, cfg)

	case *syntax.Repeat:
		if t.Min >= 1 {
			return extract(t.Child, cfg)
		}
		return nil, false

	case *syntax.Alt:
		// Every branch must contribute, otherwise a branch without a
		// required literal provides an unfiltered escape.
		var union [][]byte
		for _, child := range t.Children {
			lits, ok := extract(child, cfg)
			if !ok {
				return nil, false
			}
			union = append(union, lits...)
			if len(union) > cfg.MaxLiterals {
				return nil, false
			}
		}
		return union, true

	case *syntax.Concat:
		return extractConcat(t, cfg)
	}

	// Epsilon, Any, Star, Optional: nothing is required.
	return nil, false
}

// extractConcat picks the strongest candidate among the concatenation's
// children: either a maximal run of consecutive Literal children joined into
// one string, or a single child's extracted set. Longer literals filter
// better, so candidates are scored by their shortest literal.
func extractConcat(cat *syntax.Concat, cfg Config) ([][]byte, bool) {
	var best [][]byte
	consider := func(lits [][]byte) {
		if len(lits) == 0 || len(lits) > cfg.MaxLiterals {
			return
		}
		if best == nil || score(lits) > score(best) {
			best = lits
		}
	}

	var run []byte
	flush := func() {
		if len(run) > 0 {
			lit := run
			if len(lit) > cfg.MaxLiteralLen {
				lit = lit[:cfg.MaxLiteralLen]
			}
			consider([][]byte{lit})
			run = nil
		}
	}

	for _, child := range cat.Children {
		if lit, ok := child.(*syntax.Literal); ok {
			run = append(run, lit.C)
			continue
		}
		flush()
		if lits, ok := extract(child, cfg); ok {
			consider(lits)
		}
	}
	flush()

	return best, best != nil
}

// score rates a candidate set by its shortest literal; ties go to the
// smaller set.
func score(lits [][]byte) int {
	shortest := len(lits[0])
	for _, l := range lits[1:] {
		if len(l) < shortest {
			shortest = len(l)
		}
	}
	return shortest*1024 - len(lits)
}

// expandClass enumerates a small non-inverted class into single-byte
// literals.
func expandClass(cl *syntax.Class, cfg Config) ([][]byte, bool) {
	if cl.Invert {
		return nil, false
	}
	size := 0
	for _, iv := range cl.Intervals {
		size += int(iv.Hi) - int(iv.Lo) + 1
		if size > cfg.MaxClassSize {
			return nil, false
		}
	}
	lits := make([][]byte, 0, size)
	for _, iv := range cl.Intervals {
		for c := int(iv.Lo); c <= int(iv.Hi); c++ {
			lits = append(lits, []byte{byte(c)})
		}
	}
	return lits, true
}

func dedupe(lits [][]byte) [][]byte {
	seen := make(map[string]struct{}, len(lits))
	out := lits[:0]
	for _, l := range lits {
		if _, dup := seen[string(l)]; dup {
			continue
		}
		seen[string(l)] = struct{}{}
		out = append(out, l)
	}
	return out
}
