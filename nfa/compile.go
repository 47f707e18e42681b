package nfa

import "github.com/serrainoalessio/regex/syntax"

// Compile lowers a well-formed AST into an NFA. It never fails: every AST
// the parser produces yields a well-formed automaton. When optimize is true
// the reducer runs once over the result.
//
// Group 0 opens and closes on the outermost transitions of the root
// expression. A missing begin (end) anchor becomes a self-loop over an Any
// matcher on the initial (final) state, so unmatched prefixes (suffixes) are
// skipped.
func Compile(ast *syntax.AST, optimize bool) *NFA {
	n := newNFA()
	begin, end := n.newState(), n.newState()
	n.states[begin].Initial = true
	n.states[end].Final = true
	n.compileNode(begin, end, ast.Root, []int{0}, []int{0})
	if !ast.AnchorBegin {
		n.addTransition(AnyMatcher(), begin, begin, nil, nil)
	}
	if !ast.AnchorEnd {
		n.addTransition(AnyMatcher(), end, end, nil, nil)
	}
	if optimize {
		n.Reduce()
	}
	return n
}

// withGroup returns groups ∪ {g}. Capture indices are allocated in
// increasing order, so appending keeps the set sorted.
func withGroup(groups []int, g int) []int {
	out := make([]int, len(groups), len(groups)+1)
	copy(out, groups)
	return append(out, g)
}

// compileNode expands node between the begin and end states, applying the
// open-group marks on entry and the close-group marks on exit.
func (n *NFA) compileNode(begin, end StateID, node syntax.Node, open, close []int) {
	switch t := node.(type) {
	case *syntax.Epsilon:
		n.addTransition(EpsilonMatcher(), begin, end, open, close)
	case *syntax.Literal:
		n.addTransition(CharMatcher(t.C), begin, end, open, close)
	case *syntax.Any:
		n.addTransition(AnyMatcher(), begin, end, open, close)
	case *syntax.Class:
		n.addTransition(ClassMatcher(t.Invert, t.Intervals), begin, end, open, close)
	case *syntax.Group:
		if t.Capturing {
			g := n.newGroup()
			n.compileNode(begin, end, t.Child, withGroup(open, g), withGroup(close, g))
		} else {
			n.compileNode(begin, end, t.Child, open, close)
		}
	case *syntax.Concat:
		n.compileConcat(begin, end, t, open, close)
	case *syntax.Alt:
		for _, child := range t.Children {
			n.compileNode(begin, end, child, open, close)
		}
	case *syntax.Star:
		n.compileStar(begin, end, t.Child, t.Greedy, open, close)
	case *syntax.Plus:
		n.compilePlus(begin, end, t.Child, t.Greedy, open, close)
	case *syntax.Optional:
		n.compileOptional(begin, end, t.Child, t.Greedy, open, close)
	case *syntax.Repeat:
		n.compileRepeat(begin, end, t, open, close)
	}
}

// compileConcat chains the children through fresh connector states. The
// first child receives the caller's open marks, the last the close marks;
// interior connectors carry none.
func (n *NFA) compileConcat(begin, end StateID, cat *syntax.Concat, open, close []int) {
	cur := begin
	last := len(cat.Children) - 1
	for i, child := range cat.Children {
		next := end
		if i != last {
			next = n.newState()
		}
		var og, cg []int
		if i == 0 {
			og = open
		}
		if i == last {
			cg = close
		}
		n.compileNode(cur, next, child, og, cg)
		cur = next
	}
}

// compileStar encodes zero-or-more. The order of the loop and exit edges
// encodes greediness: the backtracker prefers earlier edges, so greedy
// inserts the loop edge first. A child that itself accepts epsilon gets the
// four-state variant to avoid a degenerate zero-width loop through the
// single middle state.
func (n *NFA) compileStar(begin, end StateID, child syntax.Node, greedy bool, open, close []int) {
	if child.AcceptsEpsilon() {
		before, after := n.newState(), n.newState()
		if greedy {
			n.addTransition(EpsilonMatcher(), begin, before, open, nil)
			n.addTransition(EpsilonMatcher(), begin, end, open, close)
		} else {
			n.addTransition(EpsilonMatcher(), begin, end, open, close)
			n.addTransition(EpsilonMatcher(), begin, before, open, nil)
		}
		n.compileNode(before, after, child, nil, nil)
		if greedy {
			n.addTransition(EpsilonMatcher(), after, before, nil, nil)
			n.addTransition(EpsilonMatcher(), after, end, nil, close)
		} else {
			n.addTransition(EpsilonMatcher(), after, end, nil, close)
			n.addTransition(EpsilonMatcher(), after, before, nil, nil)
		}
		return
	}

	mid := n.newState()
	n.addTransition(EpsilonMatcher(), begin, mid, open, nil)
	if greedy {
		n.compileNode(mid, mid, child, nil, nil)
		n.addTransition(EpsilonMatcher(), mid, end, nil, close)
	} else {
		n.addTransition(EpsilonMatcher(), mid, end, nil, close)
		n.compileNode(mid, mid, child, nil, nil)
	}
}

// compilePlus encodes one-or-more with a before/after state pair and a back
// edge; edge order encodes greediness.
func (n *NFA) compilePlus(begin, end StateID, child syntax.Node, greedy bool, open, close []int) {
	before, after := n.newState(), n.newState()
	n.addTransition(EpsilonMatcher(), begin, before, open, nil)
	n.compileNode(before, after, child, nil, nil)
	if greedy {
		n.addTransition(EpsilonMatcher(), after, before, nil, nil)
		n.addTransition(EpsilonMatcher(), after, end, nil, close)
	} else {
		n.addTransition(EpsilonMatcher(), after, end, nil, close)
		n.addTransition(EpsilonMatcher(), after, before, nil, nil)
	}
}

// compileOptional encodes zero-or-one: the child and a bypass epsilon, in
// preference order.
func (n *NFA) compileOptional(begin, end StateID, child syntax.Node, greedy bool, open, close []int) {
	if greedy {
		n.compileNode(begin, end, child, open, close)
		n.addTransition(EpsilonMatcher(), begin, end, open, close)
	} else {
		n.addTransition(EpsilonMatcher(), begin, end, open, close)
		n.compileNode(begin, end, child, open, close)
	}
}

// compileRepeat unrolls the repetition up to min copies in series, then
// dispatches on the tail shape: nothing more for exact counts, a loop for
// unbounded ones, and optional-exit epsilons past min for bounded ranges.
func (n *NFA) compileRepeat(begin, end StateID, rep *syntax.Repeat, open, close []int) {
	openAt := func(i int) []int {
		if i == 0 {
			return open
		}
		return nil
	}

	cur := begin
	i := 0
	if rep.Min != 0 {
		for ; i < rep.Min-1; i++ {
			next := n.newState()
			n.compileNode(cur, next, rep.Child, openAt(i), nil)
			cur = next
		}
	}

	switch {
	case rep.Exact():
		if rep.Min != 0 {
			n.compileNode(cur, end, rep.Child, openAt(i), close)
		} else {
			n.addTransition(EpsilonMatcher(), begin, end, open, close)
		}

	case rep.Unbounded:
		switch rep.Min {
		case 0:
			n.compileStar(begin, end, rep.Child, rep.Greedy, open, close)
		case 1:
			n.compilePlus(begin, end, rep.Child, rep.Greedy, open, close)
		default:
			// The min'th copy closes the loop back onto its own entry.
			next := n.newState()
			n.compileNode(cur, next, rep.Child, nil, nil)
			if rep.Greedy {
				n.addTransition(EpsilonMatcher(), next, cur, nil, nil)
				n.addTransition(EpsilonMatcher(), next, end, nil, close)
			} else {
				n.addTransition(EpsilonMatcher(), next, end, nil, close)
				n.addTransition(EpsilonMatcher(), next, cur, nil, nil)
			}
		}

	default: // bounded, not exact: unroll to max with early exits past min
		for ; i < rep.Max-1; i++ {
			next := n.newState()
			if rep.Greedy {
				n.compileNode(cur, next, rep.Child, openAt(i), nil)
				if i >= rep.Min {
					n.addTransition(EpsilonMatcher(), cur, end, openAt(i), close)
				}
			} else {
				if i >= rep.Min {
					n.addTransition(EpsilonMatcher(), cur, end, openAt(i), close)
				}
				n.compileNode(cur, next, rep.Child, openAt(i), nil)
			}
			cur = next
		}
		if rep.Greedy {
			n.compileNode(cur, end, rep.Child, openAt(i), close)
			n.addTransition(EpsilonMatcher(), cur, end, openAt(i), close)
		} else {
			n.addTransition(EpsilonMatcher(), cur, end, openAt(i), close)
			n.compileNode(cur, end, rep.Child, openAt(i), close)
		}
	}
}
