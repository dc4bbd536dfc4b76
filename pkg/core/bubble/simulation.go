package bubble

import (
	"errors"
	"iter"
	"math/rand/v2"
	"slices"
)

// ErrSuperseded is reported by a simulation whose engine started a newer run.
var ErrSuperseded = errors.New("simulation superseded by a newer run")

// EventKind distinguishes tick events from the terminal settled event.
type EventKind int

const (
	// EventTick is emitted after every simulation step.
	EventTick EventKind = iota
	// EventSettled is emitted exactly once, after the last tick.
	EventSettled
)

// String returns "tick" or "settled".
func (k EventKind) String() string {
	if k == EventSettled {
		return "settled"
	}
	return "tick"
}

// Event is one value of the tick stream. Bubbles and Anchors are copies the
// caller may keep or modify.
type Event struct {
	Kind EventKind
	State

	// LabelsVisible is set on the settled event only: the layout has come to
	// rest and labels may be drawn.
	LabelsVisible bool
}

// Simulation is a single, non-restartable run of the layout engine.
type Simulation struct {
	engine     *Engine
	generation uint64
	model      *model
	rng        *rand.Rand

	state   State
	pending bool // settle condition reached; the settled event is next
	done    bool
	err     error
}

func newSimulation(e *Engine, gen uint64, m *model, initial State, rng *rand.Rand) *Simulation {
	return &Simulation{
		engine:     e,
		generation: gen,
		model:      m,
		rng:        rng,
		state:      initial,
		pending:    len(initial.Bubbles) == 0,
	}
}

// Next advances the simulation by one tick and returns the resulting event.
// After the settled event, or once the simulation has been superseded, Next
// returns false.
func (s *Simulation) Next() (Event, bool) {
	if s.done {
		return Event{}, false
	}
	if s.engine.generation != s.generation {
		s.done = true
		s.err = ErrSuperseded
		return Event{}, false
	}

	if s.pending {
		s.done = true
		s.state = finish(s.model, s.state, s.rng)
		return Event{Kind: EventSettled, State: s.state.clone(), LabelsVisible: true}, true
	}

	s.state = step(s.model, s.state, s.rng)
	if s.model.settled(s.state) {
		s.pending = true
	}
	return Event{Kind: EventTick, State: s.state.clone()}, true
}

// Events returns the remaining events as an iterator. Breaking out of the
// loop leaves the simulation where it stopped.
func (s *Simulation) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			ev, ok := s.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}

// Settle drains the simulation and returns the settled event. It returns
// [ErrSuperseded] if a newer run started before the simulation settled.
func (s *Simulation) Settle() (Event, error) {
	var last Event
	for ev := range s.Events() {
		last = ev
	}
	if s.err != nil {
		return Event{}, s.err
	}
	if last.Kind != EventSettled {
		return Event{Kind: EventSettled, State: s.state.clone(), LabelsVisible: true}, nil
	}
	return last, nil
}

// State returns a copy of the current snapshot.
func (s *Simulation) State() State { return s.state.clone() }

// Settled reports whether the settled event has been emitted.
func (s *Simulation) Settled() bool { return s.done && s.err == nil }

// Err returns ErrSuperseded if the simulation was invalidated by a newer run.
func (s *Simulation) Err() error { return s.err }

// Anchors returns the category anchors of this run.
func (s *Simulation) Anchors() []Anchor { return slices.Clone(s.model.anchors) }

// Len returns the number of bubbles in the working set.
func (s *Simulation) Len() int { return len(s.state.Bubbles) }
