package rule

// Lookup describes a discriminant over hints: a function mapping some hints
// to a key in [0, Size), and a representative hint for every key.
//
// Every hint with a given key must receive the same [Rule.QuickCheck]
// verdict as the representative of that key. Hints without a key are
// checked rule by rule.
type Lookup[T any] struct {
	Key  func(hint T) (int, bool)
	Rep  func(key int) T
	Size int
}

// ASCII returns a lookup keyed by the 128 ASCII code points.
func ASCII() Lookup[rune] {
	return Lookup[rune]{
		Key: func(r rune) (int, bool) {
			if r >= 0 && r < 0x80 {
				return int(r), true
			}

			return 0, false
		},
		Rep:  func(k int) rune { return rune(k) },
		Size: 0x80,
	}
}

// table maps each discriminant key to the indices of the rules whose
// QuickCheck does not reject the key's representative.
type table[T any] struct {
	key        func(T) (int, bool)
	candidates [][]int
}

func buildTable[T, C, O any](lk Lookup[T], set Set[T, C, O]) *table[T] {
	if lk.Key == nil || lk.Rep == nil || lk.Size <= 0 {
		return nil
	}

	t := &table[T]{
		key:        lk.Key,
		candidates: make([][]int, lk.Size),
	}

	for k := range lk.Size {
		hint := lk.Rep(k)

		for i, r := range set.All() {
			if r.QuickCheck(hint, true) != Impossible {
				t.candidates[k] = append(t.candidates[k], i)
			}
		}
	}

	return t
}

// lookup returns the candidate rule indices for hint, if hint has a key.
func (t *table[T]) lookup(hint T) ([]int, bool) {
	if t == nil {
		return nil, false
	}

	k, ok := t.key(hint)
	if !ok || k < 0 || k >= len(t.candidates) {
		return nil, false
	}

	return t.candidates[k], true
}
