package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// AnySet reports whether at least one of the optional fields is present.
func AnySet(fields ...bool) bool {
	for _, f := range fields {
		if f {
			return true
		}
	}
	return false
}
