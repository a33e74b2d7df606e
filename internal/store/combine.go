package store

import "fmt"

// Slice binds one named field of the state tree S to the reducer that owns it.
// Build slices with Field.
type Slice[S any] struct {
	Key string
	// reduce writes the slice's next value into next and reports whether it
	// differs from the value in prev.
	reduce func(prev, next *S, a Action) bool
}

// Field declares a slice of S stored at the field returned by at and owned by r.
// Change detection uses ==, so pointer-valued slices compare by reference.
func Field[S any, T comparable](key string, at func(*S) *T, r Reducer[T]) Slice[S] {
	return Slice[S]{
		Key: key,
		reduce: func(prev, next *S, a Action) bool {
			cur := *at(prev)
			out := r(cur, a)
			*at(next) = out
			return out != cur
		},
	}
}

// Combine builds a root reducer over *S from its slices. Each slice reducer
// sees only its own field. When no slice changes, the previous *S is
// returned as-is, so callers can detect no-op dispatches by pointer
// comparison. Combine panics on empty or duplicate keys.
func Combine[S any](slices ...Slice[S]) Reducer[*S] {
	seen := make(map[string]struct{}, len(slices))
	for _, sl := range slices {
		if sl.Key == "" || sl.reduce == nil {
			panic("store: slice must be built with Field and have a key")
		}
		if _, dup := seen[sl.Key]; dup {
			panic(fmt.Sprintf("store: duplicate slice key %q", sl.Key))
		}
		seen[sl.Key] = struct{}{}
	}
	return func(prev *S, a Action) *S {
		if prev == nil {
			prev = new(S)
		}
		next := *prev
		changed := false
		for _, sl := range slices {
			if sl.reduce(prev, &next, a) {
				changed = true
			}
		}
		if !changed {
			return prev
		}
		return &next
	}
}

// Keys returns the slice keys in declaration order.
func Keys[S any](slices ...Slice[S]) []string {
	out := make([]string, 0, len(slices))
	for _, sl := range slices {
		out = append(out, sl.Key)
	}
	return out
}

// SameRef reports whether two state pointers are identical. It is the Equal
// function to use with reducers built by Combine.
func SameRef[S any](a, b *S) bool { return a == b }
