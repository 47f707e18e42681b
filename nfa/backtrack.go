package nfa

// Simulate runs the depth-first backtracking evaluator and returns the
// capture spans of the first match found, or nil when the input does not
// match. Spans are indexed by group: spans[0] is the whole match, spans[g]
// the g'th capturing group; groups never traversed hold the invalid span.
//
// Transitions are tried in insertion order, which is what makes greedy and
// lazy quantifiers prefer their respective edges. A visited set of
// (state, offset) pairs guards against zero-width epsilon loops; it is
// cleared between distinct initial states and shared within one search. If
// a capturing group is traversed multiple times, the last successful
// traversal's span wins.
func (n *NFA) Simulate(input []byte) []Span {
	bt := &backtracker{
		nfa:      n,
		input:    input,
		visited:  make([]uint64, (len(n.states)*(len(input)+1)+63)/64),
		captures: make([]Span, n.groups),
	}

	for i := range n.states {
		if !n.states[i].Initial {
			continue
		}
		for k := range bt.visited {
			bt.visited[k] = 0
		}
		for g := range bt.captures {
			bt.captures[g] = Span{Start: -1, End: -1}
		}
		if bt.explore(StateID(i), 0) {
			return bt.captures
		}
	}
	return nil
}

// SimulateString is Simulate on a string input.
func (n *NFA) SimulateString(input string) []Span {
	return n.Simulate([]byte(input))
}

// backtracker is the call-local scratch of one Simulate run.
type backtracker struct {
	nfa      *NFA
	input    []byte
	captures []Span

	// visited is a bit vector over (state, offset) pairs laid out as
	// state*(len(input)+1) + offset.
	visited []uint64
}

// seen checks and marks the (state, offset) pair, reporting whether it was
// already visited.
func (bt *backtracker) seen(state StateID, pos int) bool {
	idx := int(state)*(len(bt.input)+1) + pos
	word, bit := idx/64, uint64(1)<<(idx%64)
	if bt.visited[word]&bit != 0 {
		return true
	}
	bt.visited[word] |= bit
	return false
}

// explore recursively searches from (state, pos). It succeeds when the input
// is exhausted at the final state.
func (bt *backtracker) explore(state StateID, pos int) bool {
	if pos == len(bt.input) && bt.nfa.states[state].Final {
		return true
	}
	if bt.seen(state, pos) {
		return false
	}

	for _, tr := range bt.nfa.states[state].Transitions {
		m := &bt.nfa.matchers[tr.Matcher]
		if !m.Match(bt.input, pos) {
			continue
		}

		var saved []Span
		if tr.Caps != nil {
			saved = make([]Span, len(bt.captures))
			copy(saved, bt.captures)
			for _, g := range tr.Caps.Open {
				bt.captures[g] = Span{Start: pos, End: pos}
			}
			for _, g := range tr.Caps.Close {
				bt.captures[g].End = pos + m.Len()
			}
		}

		if bt.explore(tr.Target, pos+m.Len()) {
			return true
		}

		if tr.Caps != nil {
			copy(bt.captures, saved)
		}
	}
	return false
}
