package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// Collect returns the elements of s matching keep, in order. The result never
// aliases s, so callers may iterate s while building a removal list.
func Collect[S ~[]E, E any](s S, keep func(E) bool) S {
	var out S

	for _, e := range s {
		if keep(e) {
			out = append(out, e)
		}
	}

	return out
}

// Exclude returns a new slice holding the elements of s that are not in drop,
// preserving order. s itself is left untouched.
func Exclude[S ~[]E, E comparable](s S, drop []E) S {
	if IsEmpty(drop) {
		return s
	}

	set := make(map[E]struct{}, len(drop))
	for _, d := range drop {
		set[d] = struct{}{}
	}

	out := make(S, 0, len(s))

	for _, e := range s {
		if _, ok := set[e]; !ok {
			out = append(out, e)
		}
	}

	return out
}
