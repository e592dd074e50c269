package models

// ActiveFlatMap maps FlatKey to whether the flat is currently paying. A key
// that is absent is treated as inactive.
type ActiveFlatMap map[string]bool

func (m ActiveFlatMap) IsActive(key string) bool {
	return m[key]
}

// Loaded reports whether billing data is available. An empty map means the
// billing fetch has not completed or failed.
func (m ActiveFlatMap) Loaded() bool {
	return len(m) > 0
}

// ActiveCount returns how many of the given flats on (block, floor) are active.
func (m ActiveFlatMap) ActiveCount(block, floor int, flats []string) int {
	n := 0
	for _, f := range flats {
		if m[FlatKey(block, f, floor)] {
			n++
		}
	}
	return n
}
