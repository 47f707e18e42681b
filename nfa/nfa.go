// Package nfa lowers a parsed pattern into a nondeterministic finite
// automaton with capture-group annotations and evaluates it against input
// strings.
//
// The automaton is a Thompson construction extended with capture marks on
// transitions. Two independent evaluators run over it: Simulate, a
// depth-first backtracker that records capture spans, and Powerset, a subset
// construction that decides membership without captures.
//
// Basic usage:
//
//	ast, err := syntax.Parse(`<[a-z]+>@<[a-z]+>`, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n := nfa.Compile(ast, true)
//	if n.PowersetString("user@host") {
//	    spans := n.SimulateString("user@host")
//	    _ = spans // spans[1], spans[2] are the two groups
//	}
package nfa

import "fmt"

// StateID uniquely identifies an NFA state. State indices are contiguous;
// the reducer renumbers them when states are removed.
type StateID = uint32

// MatcherID indexes the NFA's matcher pool.
type MatcherID = uint32

// CaptureSet lists the capture groups whose span opens on a transition and
// those that close on it. Transitions created together share one CaptureSet
// by pointer; a transition with no capture effect carries nil instead.
type CaptureSet struct {
	Open  []int
	Close []int
}

// Transition is a forward edge: a matcher guarding it, a target state, and
// optional capture marks. The order of a state's transitions is semantically
// significant: it encodes the greedy/lazy preference for the backtracker.
type Transition struct {
	Matcher MatcherID
	Target  StateID
	Caps    *CaptureSet
}

// RTransition mirrors a forward transition from the target's point of view.
// The reducer walks these to find a state's predecessors.
type RTransition struct {
	Matcher MatcherID
	Source  StateID
	Caps    *CaptureSet
}

// State is one NFA state. Exactly one state in an NFA is Initial and exactly
// one is Final.
type State struct {
	Initial bool
	Final   bool

	// Transitions in insertion order.
	Transitions []Transition

	// Reverse mirrors of every transition targeting this state.
	Reverse []RTransition
}

// NFA is a compiled automaton: a contiguous state vector, the owning matcher
// pool (one entry per transition ever added), and the number of capture
// groups. Group 0 is implicit and spans the whole match.
//
// An NFA is immutable once built (Reduce mutates, evaluators do not), so
// evaluators are safe to run concurrently against the same NFA.
type NFA struct {
	states   []State
	matchers []Matcher
	groups   int
}

// Span is a half-open capture interval [Start, End) into the input. A group
// that was never traversed holds the invalid span (-1, -1).
type Span struct {
	Start, End int
}

// Matched reports whether the span was actually captured.
func (s Span) Matched() bool { return s.Start >= 0 }

// Of returns the captured text within input, or "" for an invalid span.
func (s Span) Of(input []byte) string {
	if !s.Matched() {
		return ""
	}
	return string(input[s.Start:s.End])
}

// newNFA returns an empty automaton with the implicit group 0.
func newNFA() *NFA {
	return &NFA{groups: 1}
}

// newState appends a fresh state and returns its id.
func (n *NFA) newState() StateID {
	n.states = append(n.states, State{})
	return StateID(len(n.states) - 1)
}

// newGroup allocates the next capture index.
func (n *NFA) newGroup() int {
	g := n.groups
	n.groups++
	return g
}

// addTransition installs matcher as a new pool entry and wires an edge from
// one state to another, mirroring it in the target's reverse list. The open
// and close sets are shared between the edge and its mirror; when both are
// empty the edge carries no capture info at all.
func (n *NFA) addTransition(matcher Matcher, from, to StateID, open, close []int) {
	var caps *CaptureSet
	if len(open) > 0 || len(close) > 0 {
		caps = &CaptureSet{Open: open, Close: close}
	}
	id := MatcherID(len(n.matchers))
	n.matchers = append(n.matchers, matcher)
	n.states[from].Transitions = append(n.states[from].Transitions,
		Transition{Matcher: id, Target: to, Caps: caps})
	n.states[to].Reverse = append(n.states[to].Reverse,
		RTransition{Matcher: id, Source: from, Caps: caps})
}

// States returns the number of states.
func (n *NFA) States() int { return len(n.states) }

// GroupCount returns the number of capture groups, the implicit group 0
// included.
func (n *NFA) GroupCount() int { return n.groups }

// State returns the state with the given id, or nil if out of range.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// Matcher returns the pool entry for id, or nil if out of range.
func (n *NFA) Matcher(id MatcherID) *Matcher {
	if int(id) >= len(n.matchers) {
		return nil
	}
	return &n.matchers[id]
}

// String returns a short human-readable summary.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, matchers: %d, groups: %d}",
		len(n.states), len(n.matchers), n.groups)
}
