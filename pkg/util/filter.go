package util

// InPlaceFilter keeps the elements matching p, preserving their order,
// and returns how many elements were removed
func InPlaceFilter[T any](s *[]T, p func(T) bool) int {
	i := 0
	for _, e := range *s {
		if p(e) {
			(*s)[i] = e
			i++
		}
	}

	removed := len(*s) - i
	*s = (*s)[:i]

	return removed
}
