package nfa

import "fmt"

// CheckError describes an internal consistency violation found by Check.
type CheckError struct {
	State StateID
	Msg   string
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("nfa check failed at state %d: %s", e.State, e.Msg)
}

// Check verifies the automaton's internal invariants and returns the first
// violation found, or nil. It must never fail on an NFA produced by Compile
// or Reduce; it exists so tests and debug builds can assert that property.
//
// Verified per state:
//   - every transition targets a valid state and references a matcher in
//     the pool, and a mirror of it exists in the target's reverse list
//     (sharing the same CaptureSet pointer);
//   - every reverse entry names a valid source holding the matching forward
//     transition;
//   - capture marks carry at least one group, every index lies within
//     GroupCount, and non-epsilon matchers have length exactly one;
//   - exactly one state is initial and exactly one is final.
func (n *NFA) Check() error {
	initials, finals := 0, 0
	for i := range n.states {
		id := StateID(i)
		state := &n.states[i]
		if state.Initial {
			initials++
		}
		if state.Final {
			finals++
		}

		for _, tr := range state.Transitions {
			if int(tr.Target) >= len(n.states) {
				return &CheckError{State: id, Msg: fmt.Sprintf("transition target %d out of range", tr.Target)}
			}
			m := n.Matcher(tr.Matcher)
			if m == nil {
				return &CheckError{State: id, Msg: fmt.Sprintf("matcher %d not in pool", tr.Matcher)}
			}
			if !m.IsEpsilon() && m.Len() != 1 {
				return &CheckError{State: id, Msg: "non-epsilon matcher with length != 1"}
			}
			if err := n.checkCaps(id, tr.Caps); err != nil {
				return err
			}
			if !n.hasReverse(tr.Target, RTransition{Matcher: tr.Matcher, Source: id, Caps: tr.Caps}) {
				return &CheckError{State: id, Msg: fmt.Sprintf("transition to %d has no reverse mirror", tr.Target)}
			}
		}

		for _, rt := range state.Reverse {
			if int(rt.Source) >= len(n.states) {
				return &CheckError{State: id, Msg: fmt.Sprintf("reverse source %d out of range", rt.Source)}
			}
			if n.Matcher(rt.Matcher) == nil {
				return &CheckError{State: id, Msg: fmt.Sprintf("reverse matcher %d not in pool", rt.Matcher)}
			}
			if err := n.checkCaps(id, rt.Caps); err != nil {
				return err
			}
			if !n.hasForward(rt.Source, Transition{Matcher: rt.Matcher, Target: id, Caps: rt.Caps}) {
				return &CheckError{State: id, Msg: fmt.Sprintf("reverse entry from %d has no forward transition", rt.Source)}
			}
		}
	}

	if initials != 1 {
		return &CheckError{Msg: fmt.Sprintf("expected exactly one initial state, found %d", initials)}
	}
	if finals != 1 {
		return &CheckError{Msg: fmt.Sprintf("expected exactly one final state, found %d", finals)}
	}
	return nil
}

func (n *NFA) checkCaps(id StateID, caps *CaptureSet) error {
	if caps == nil {
		return nil
	}
	if len(caps.Open) == 0 && len(caps.Close) == 0 {
		return &CheckError{State: id, Msg: "capture info present but empty"}
	}
	for _, g := range caps.Open {
		if g < 0 || g >= n.groups {
			return &CheckError{State: id, Msg: fmt.Sprintf("open group %d out of range", g)}
		}
	}
	for _, g := range caps.Close {
		if g < 0 || g >= n.groups {
			return &CheckError{State: id, Msg: fmt.Sprintf("close group %d out of range", g)}
		}
	}
	return nil
}

// hasReverse reports whether state id's reverse list mirrors rt. Capture
// sets compare by pointer: the builder installs the same set on an edge and
// its mirror.
func (n *NFA) hasReverse(id StateID, rt RTransition) bool {
	for _, have := range n.states[id].Reverse {
		if have == rt {
			return true
		}
	}
	return false
}

func (n *NFA) hasForward(id StateID, tr Transition) bool {
	for _, have := range n.states[id].Transitions {
		if have == tr {
			return true
		}
	}
	return false
}
