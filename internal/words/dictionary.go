// internal/words/dictionary.go
//
// Dictionary is the in-memory set of words accepted as guesses and secrets.
//
// Characteristics:
//   - Every member has exactly WordLength letters of the Alphabet.
//   - Members are stored upper-case; lookups normalize their input.
//   - Insertion order is kept (it is the persisted order).
//   - Concurrency-safe via RWMutex; one Dictionary is shared by all games.

package words

import "sync"

// Dictionary holds the ordered set of valid words.
type Dictionary struct {
	mu       sync.RWMutex
	length   int
	alphabet Alphabet
	list     []string
	set      map[string]struct{}
}

// NewDictionary constructs an empty dictionary for words of the given length.
func NewDictionary(length int, alphabet Alphabet) *Dictionary {
	return &Dictionary{
		length:   length,
		alphabet: alphabet,
		set:      make(map[string]struct{}),
	}
}

// Valid reports whether w (after normalization) has the right length and letters.
func (d *Dictionary) Valid(w string) bool {
	w = Normalize(w)
	return Length(w) == d.length && d.alphabet.Contains(w)
}

// Add appends w to the dictionary.
// Returns false if w is already present or is not a valid word.
func (d *Dictionary) Add(w string) bool {
	w = Normalize(w)
	if Length(w) != d.length || !d.alphabet.Contains(w) {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.set[w]; ok {
		return false
	}
	d.set[w] = struct{}{}
	d.list = append(d.list, w)
	return true
}

// Contains reports whether w is a member (case-insensitive).
func (d *Dictionary) Contains(w string) bool {
	w = Normalize(w)
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.set[w]
	return ok
}

// Words returns a copy of the members in insertion order.
func (d *Dictionary) Words() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.list...)
}

// Len returns the number of members.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.list)
}

// WordLength returns the fixed word length of this dictionary.
func (d *Dictionary) WordLength() int { return d.length }

// Alphabet returns the alphabet members are drawn from.
func (d *Dictionary) Alphabet() Alphabet { return d.alphabet }
