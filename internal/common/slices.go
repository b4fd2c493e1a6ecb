package common

// IsEmpty reports whether the slice has no elements. Nil and empty slices are
// treated alike, so directive trees and field lists can be either.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}
