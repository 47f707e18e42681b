package nfa

import "github.com/serrainoalessio/regex/internal/sparse"

// Powerset decides membership by subset construction: starting from the
// initial states, it alternates epsilon closure with a one-symbol step for
// every input byte, then closes once more and checks for the final state.
// Capture marks are ignored; this mode computes no spans.
//
// Every non-epsilon matcher consumes exactly one byte (the construction
// guarantees it and Check verifies it), so a single step per input byte is
// complete.
func (n *NFA) Powerset(input []byte) bool {
	cur := sparse.NewSet(uint32(len(n.states)))
	next := sparse.NewSet(uint32(len(n.states)))

	for i := range n.states {
		if n.states[i].Initial {
			cur.Insert(uint32(i))
		}
	}

	for _, c := range input {
		n.epsilonClosure(cur)
		next.Clear()
		for _, id := range cur.Values() {
			for _, tr := range n.states[id].Transitions {
				m := &n.matchers[tr.Matcher]
				if m.Len() == 1 && m.MatchByte(c) {
					next.Insert(tr.Target)
				}
			}
		}
		cur, next = next, cur
	}

	n.epsilonClosure(cur)
	for _, id := range cur.Values() {
		if n.states[id].Final {
			return true
		}
	}
	return false
}

// PowersetString is Powerset on a string input.
func (n *NFA) PowersetString(input string) bool {
	return n.Powerset([]byte(input))
}

// epsilonClosure grows set with every state reachable through epsilon
// transitions alone. The dense slice of the set serves as the worklist:
// newly inserted states are picked up by the index walk.
func (n *NFA) epsilonClosure(set *sparse.Set) {
	values := set.Values()
	for i := 0; i < set.Len(); i++ {
		id := values[i]
		for _, tr := range n.states[id].Transitions {
			if n.matchers[tr.Matcher].IsEpsilon() {
				set.Insert(tr.Target)
			}
		}
		values = set.Values()
	}
}
