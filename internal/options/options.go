// Package options implements the functional-options pattern shared by
// every WithXxx configuration knob in this module (crackle.Option wraps
// Option[*decodeConfig]).
package options

// Option configures a target of type T. crackle.Option is an alias for
// Option[*decodeConfig]; other configurable types could reuse the same
// generic without duplicating this plumbing.
type Option[T any] interface {
	apply(T)
}

// Func adapts a plain mutator function into an Option.
type Func[T any] struct {
	fn func(T)
}

func (f *Func[T]) apply(target T) {
	f.fn(target)
}

// New creates an Option from a function that mutates target in place.
// None of this module's options can fail validation at construction
// time, so unlike some functional-options packages there is no
// error-returning variant to pair it with.
func New[T any](fn func(T)) *Func[T] {
	return &Func[T]{fn: fn}
}

// Apply runs every opt against target in order.
func Apply[T any](target T, opts ...Option[T]) {
	for _, opt := range opts {
		opt.apply(target)
	}
}
