// internal/game/evaluate.go
//
// Guess evaluation with duplicate-letter handling.

package game

// Evaluate scores guess against secret using the two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches Correct and consume that secret letter.
//
// Pass 2 (only after pass 1 is complete):
//   - Left to right over the remaining guess letters, consume the first unconsumed
//     matching secret letter and mark Present; otherwise leave Absent.
//
// A letter repeated in the guess but present once in the secret therefore yields
// exactly one Correct/Present; the extra copies are Absent.
//
// Both words are compared rune by rune; callers pass normalized, equal-length words.
func Evaluate(guess, secret string) []Mark {
	g := []rune(guess)
	pool := []rune(secret)
	n := len(g)

	res := make([]Mark, n)
	for i := range res {
		res[i] = MarkAbsent
	}

	for i := 0; i < n && i < len(pool); i++ {
		if g[i] == pool[i] {
			res[i] = MarkCorrect
			pool[i] = 0
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		if j := indexRune(pool, g[i]); j >= 0 {
			res[i] = MarkPresent
			pool[j] = 0
		}
	}
	return res
}

// indexRune returns the first index of r in s, or -1. Consumed slots hold 0.
func indexRune(s []rune, r rune) int {
	if r == 0 {
		return -1
	}
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}

// allCorrect returns true if all marks are MarkCorrect.
func allCorrect(m []Mark) bool {
	if len(m) == 0 {
		return false
	}
	for _, x := range m {
		if x != MarkCorrect {
			return false
		}
	}
	return true
}
