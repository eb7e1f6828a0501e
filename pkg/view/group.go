package view

import (
	"reflect"
)

// Group renders an ordered fragment of child views. Children are reconciled
// by position: a child whose view kind is unchanged reuses its previous
// state and nodes, a child whose kind changed is razed and rebuilt from
// scratch, and surplus children from the previous build are razed.
type Group []View

type groupState struct {
	views  []View
	states []State
	spans  []Span
}

func (g Group) Build(s *Session, state *State, prev Span) Span {
	st, ok := (*state).(*groupState)
	if !ok {
		// A different view kind occupied this slot last cycle.
		if !prev.IsEmpty() {
			prev.Despawn(s)
		}
		st = &groupState{}
		*state = st
	}

	for i := len(g); i < len(st.views); i++ {
		if st.views[i] != nil {
			st.views[i].Raze(s, &st.states[i], st.spans[i])
		}
	}
	if len(st.views) > len(g) {
		st.views = st.views[:len(g)]
		st.states = st.states[:len(g)]
		st.spans = st.spans[:len(g)]
	}
	for len(st.views) < len(g) {
		st.views = append(st.views, nil)
		st.states = append(st.states, nil)
		st.spans = append(st.spans, Empty())
	}

	spans := make([]Span, len(g))
	for i, v := range g {
		if st.views[i] != nil && reflect.TypeOf(st.views[i]) != reflect.TypeOf(v) {
			st.views[i].Raze(s, &st.states[i], st.spans[i])
			st.states[i] = nil
			st.spans[i] = Empty()
		}
		st.spans[i] = v.Build(s, &st.states[i], st.spans[i])
		st.views[i] = v
		spans[i] = st.spans[i]
	}
	return FragmentOf(spans...)
}

func (g Group) Raze(s *Session, state *State, prev Span) {
	st, ok := (*state).(*groupState)
	if !ok {
		prev.Despawn(s)
		return
	}
	for i := range st.views {
		if st.views[i] != nil {
			st.views[i].Raze(s, &st.states[i], st.spans[i])
		}
	}
	*state = nil
}
