package domain

// CardEntry represents a word-definition pair
type CardEntry struct {
	Word       string `db:"word"`
	Definition string `db:"definition"`
}

// CardSet is an ordered, cyclic sequence of cards loaded for one session.
// It is read-only once built.
type CardSet struct {
	entries []CardEntry
}

// NewCardSet copies entries into a new card set
func NewCardSet(entries []CardEntry) CardSet {
	if len(entries) == 0 {
		return CardSet{}
	}
	copied := make([]CardEntry, len(entries))
	copy(copied, entries)
	return CardSet{entries: copied}
}

// Len returns number of cards
func (s CardSet) Len() int {
	return len(s.entries)
}

// Empty reports whether the set has no cards
func (s CardSet) Empty() bool {
	return len(s.entries) == 0
}

// At returns the card at position i, wrapping around the end of the set.
// Calling At on an empty set panics.
func (s CardSet) At(i int) CardEntry {
	n := len(s.entries)
	return s.entries[((i%n)+n)%n]
}

// Next returns the position following i
func (s CardSet) Next(i int) int {
	if s.Empty() {
		return 0
	}
	return (i + 1) % len(s.entries)
}
