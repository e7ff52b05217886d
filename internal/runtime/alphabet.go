package runtime

// alphabet is the derived set of symbols seen on registered transitions.
// Insertion order is kept for display; membership uses the index map.
type alphabet struct {
	symbols []rune
	index   map[rune]struct{}
	max     int
}

func newAlphabet(max int) *alphabet {
	return &alphabet{
		index: make(map[rune]struct{}),
		max:   max,
	}
}

func (a *alphabet) contains(sym rune) bool {
	_, ok := a.index[sym]
	return ok
}

// register adds sym if absent. When the alphabet is full the symbol is dropped
// and register reports false; the caller decides whether that is worth a warning.
func (a *alphabet) register(sym rune) bool {
	if a.contains(sym) {
		return true
	}
	if a.max > 0 && len(a.symbols) >= a.max {
		return false
	}
	a.symbols = append(a.symbols, sym)
	a.index[sym] = struct{}{}
	return true
}

func (a *alphabet) list() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

func (a *alphabet) size() int {
	return len(a.symbols)
}
