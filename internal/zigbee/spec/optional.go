package spec

// Optional holds a field value that may be unset. Zero is a legal value for
// nearly every field, so presence is tracked separately.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value was assigned.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrZero returns the value, or the zero value when unset.
func (o Optional[T]) OrZero() T {
	return o.value
}
