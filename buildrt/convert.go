package buildrt

// Into is accepted by setters of fields configured with "into": anything
// that can produce a T.
type Into[T any] interface {
	Into() T
}

// TryInto is accepted by fallible setters: anything that can produce a T or
// fail trying.
type TryInto[T any] interface {
	TryInto() (T, error)
}

type value[T any] struct {
	v T
}

func (v value[T]) Into() T {
	return v.v
}

func (v value[T]) TryInto() (T, error) {
	return v.v, nil
}

// Value wraps a plain value. The result satisfies both Into and TryInto.
func Value[T any](v T) interface {
	Into[T]
	TryInto[T]
} {
	return value[T]{v: v}
}

// Func adapts a function to Into.
type Func[T any] func() T

func (f Func[T]) Into() T {
	return f()
}

// TryFunc adapts a fallible function to TryInto.
type TryFunc[T any] func() (T, error)

func (f TryFunc[T]) TryInto() (T, error) {
	return f()
}

// Convert converts v with f when the setter asks for the value.
func Convert[S, T any](v S, f func(S) T) Into[T] {
	return Func[T](func() T { return f(v) })
}

// TryConvert converts v with a fallible f when the setter asks for the value.
func TryConvert[S, T any](v S, f func(S) (T, error)) TryInto[T] {
	return TryFunc[T](func() (T, error) { return f(v) })
}
