package nfa

// Reduce shrinks the automaton without changing the language it accepts or
// the capture spans it reports. Two passes run over the states in reverse
// index order:
//
//  1. Backward: a non-initial state with no incoming transitions is
//     unreachable and removed. A non-initial state whose sole incoming
//     transition is a bare epsilon (no capture marks) is fused into its
//     predecessor: the predecessor's edge is replaced, in place, by the
//     state's outgoing list, preserving order.
//  2. Forward: symmetric on outgoing transitions. Dead ends (no outgoing,
//     non-final) are removed; single-bare-epsilon-outgoing states are fused
//     into their successor.
//
// Capture-marked edges are never fused away. Reduce returns the number of
// states removed; callers may iterate to a fixed point if desired.
func (n *NFA) Reduce() int {
	before := len(n.states)
	n.reduceBackward()
	n.reduceForward()
	return before - len(n.states)
}

func (n *NFA) reduceBackward() {
	for i := len(n.states) - 1; i >= 0; i-- {
		state := &n.states[i]
		if state.Initial {
			continue
		}
		if len(state.Reverse) == 0 {
			n.removeState(StateID(i), StateID(i))
			continue
		}
		if len(state.Reverse) != 1 {
			continue
		}
		rt := state.Reverse[0]
		if !n.matchers[rt.Matcher].IsEpsilon() || rt.Caps != nil || rt.Source == StateID(i) {
			continue
		}

		// Splice this state's outgoing list into the predecessor in place
		// of the epsilon edge, keeping the predecessor's edge order.
		pred := &n.states[rt.Source]
		at := -1
		for k, tr := range pred.Transitions {
			if tr.Matcher == rt.Matcher && tr.Target == StateID(i) {
				at = k
				break
			}
		}
		if at == -1 {
			continue // mirror out of sync; leave the state alone
		}
		spliced := make([]Transition, 0, len(pred.Transitions)-1+len(state.Transitions))
		spliced = append(spliced, pred.Transitions[:at]...)
		spliced = append(spliced, state.Transitions...)
		spliced = append(spliced, pred.Transitions[at+1:]...)
		pred.Transitions = spliced

		n.removeState(StateID(i), rt.Source)
	}
}

func (n *NFA) reduceForward() {
	for i := len(n.states) - 1; i >= 0; i-- {
		state := &n.states[i]
		if state.Final {
			continue
		}
		if len(state.Transitions) == 0 {
			n.removeState(StateID(i), StateID(i))
			continue
		}
		if len(state.Transitions) != 1 {
			continue
		}
		tr := state.Transitions[0]
		if !n.matchers[tr.Matcher].IsEpsilon() || tr.Caps != nil || tr.Target == StateID(i) {
			continue
		}

		// Drop the mirror of the epsilon edge from the successor and hand
		// it this state's predecessors.
		succ := &n.states[tr.Target]
		for k, rt := range succ.Reverse {
			if rt.Matcher == tr.Matcher && rt.Source == StateID(i) {
				succ.Reverse = append(succ.Reverse[:k], succ.Reverse[k+1:]...)
				break
			}
		}
		succ.Reverse = append(succ.Reverse, state.Reverse...)

		n.removeState(StateID(i), tr.Target)
	}
}

// removeState deletes state i and patches every state index in the NFA:
// references to i are redirected to j, references past i shift down by one.
// When i == j the state is being removed outright (unreachable or dead end)
// and edges still referencing it are dropped instead of redirected.
func (n *NFA) removeState(i, j StateID) {
	drop := i == j
	n.states = append(n.states[:i], n.states[i+1:]...)
	if j > i {
		j--
	}
	for s := range n.states {
		trs := n.states[s].Transitions[:0]
		for _, tr := range n.states[s].Transitions {
			switch {
			case tr.Target > i:
				tr.Target--
			case tr.Target == i:
				if drop {
					continue
				}
				tr.Target = j
			}
			trs = append(trs, tr)
		}
		n.states[s].Transitions = trs

		rts := n.states[s].Reverse[:0]
		for _, rt := range n.states[s].Reverse {
			switch {
			case rt.Source > i:
				rt.Source--
			case rt.Source == i:
				if drop {
					continue
				}
				rt.Source = j
			}
			rts = append(rts, rt)
		}
		n.states[s].Reverse = rts
	}
}
