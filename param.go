package lazy

import "context"

// slot is the single-value cell shared by a parameter's read and write
// handles. It is deliberately unsynchronized: the library assumes one
// logical goroutine builds, binds, and evaluates a given graph.
type slot[T any] struct {
	value  T
	filled bool
}

// take removes and returns the stored value, leaving the slot empty.
func (s *slot[T]) take() (T, bool) {
	v, ok := s.value, s.filled
	var zero T
	s.value, s.filled = zero, false
	return v, ok
}

// Parameter is a leaf expression whose value is supplied after
// construction through the paired ParameterContent handle.
//
// Evaluating a parameter takes the value out of the shared slot: the slot
// is left empty, so a second evaluation fails with ErrUnboundParameter
// unless the write handle has set a new value in between. Copies of a
// Parameter share the same slot.
type Parameter[T any] struct {
	s *slot[T]
}

// ParameterContent is the write handle for a parameter. Set may be called
// any number of times before the parameter is evaluated; each call
// overwrites the previous value. Copies of a ParameterContent share the
// same slot and may all call Set.
type ParameterContent[T any] struct {
	s *slot[T]
}

// NewParameter creates a parameter with no initial value, returning the
// read handle (used inside expression trees) and the write handle (used
// externally to bind the value).
func NewParameter[T any]() (Parameter[T], ParameterContent[T]) {
	s := &slot[T]{}
	return Parameter[T]{s: s}, ParameterContent[T]{s: s}
}

// NewParameterWith creates a parameter pre-seeded with a value. The write
// handle can still overwrite it before evaluation.
func NewParameterWith[T any](value T) (Parameter[T], ParameterContent[T]) {
	s := &slot[T]{value: value, filled: true}
	return Parameter[T]{s: s}, ParameterContent[T]{s: s}
}

// Set stores a value in the parameter's slot, silently replacing any value
// already there.
func (c ParameterContent[T]) Set(value T) {
	c.s.value = value
	c.s.filled = true
}

// Evaluate takes the bound value out of the slot. It returns
// ErrUnboundParameter if no value has been set, which signals that the
// graph was evaluated before all of its parameters were bound.
func (p Parameter[T]) Evaluate(ctx context.Context) (T, error) {
	v, ok := p.s.take()
	if !ok {
		var zero T
		return zero, ErrUnboundParameter
	}
	return v, nil
}
