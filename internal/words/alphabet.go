// internal/words/alphabet.go
//
// Alphabet describes the set of letters a player may type.
// The default is the Spanish variant: A–Z plus Ñ.
//
// Letters are compared after upper-casing, so 'ñ' and 'Ñ' are the same key.
// Word lengths are measured in runes; "AÑEJO" is five letters.

package words

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLetters is the alphabet used when none is configured.
const DefaultLetters = "ABCDEFGHIJKLMNÑOPQRSTUVWXYZ"

// Alphabet is an immutable set of upper-case letters.
type Alphabet struct {
	letters []rune
	set     map[rune]struct{}
}

// NewAlphabet builds an alphabet from the letters of s (upper-cased, duplicates dropped).
func NewAlphabet(s string) Alphabet {
	a := Alphabet{set: make(map[rune]struct{}, utf8.RuneCountInString(s))}
	for _, r := range strings.ToUpper(s) {
		if unicode.IsSpace(r) {
			continue
		}
		if _, dup := a.set[r]; dup {
			continue
		}
		a.set[r] = struct{}{}
		a.letters = append(a.letters, r)
	}
	return a
}

// DefaultAlphabet returns the A–Z + Ñ alphabet.
func DefaultAlphabet() Alphabet { return NewAlphabet(DefaultLetters) }

// Letter normalizes r and reports whether it belongs to the alphabet.
func (a Alphabet) Letter(r rune) (rune, bool) {
	up := unicode.ToUpper(r)
	_, ok := a.set[up]
	return up, ok
}

// Contains reports whether every rune of an already-normalized word is in the alphabet.
func (a Alphabet) Contains(word string) bool {
	for _, r := range word {
		if _, ok := a.set[r]; !ok {
			return false
		}
	}
	return true
}

// Letters returns the alphabet in declaration order.
func (a Alphabet) Letters() []rune {
	return append([]rune(nil), a.letters...)
}

func (a Alphabet) String() string { return string(a.letters) }

// Normalize trims and upper-cases a word.
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// Length returns the number of letters in w.
func Length(w string) int { return utf8.RuneCountInString(w) }
