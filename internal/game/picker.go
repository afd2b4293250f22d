package game

import (
	"crypto/rand"
	"math/big"
)

// Picker chooses a secret from the ordered dictionary list.
// The list is never empty when Pick is called.
type Picker interface {
	Pick(words []string) (string, error)
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(words []string) (string, error)

func (f PickerFunc) Pick(words []string) (string, error) { return f(words) }

// RandomPicker draws uniformly with crypto/rand.
type RandomPicker struct{}

func (RandomPicker) Pick(list []string) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptyDictionary
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", err
	}
	return list[n.Int64()], nil
}

// FixedPicker always returns word. Used for tests and fixed-answer games.
func FixedPicker(word string) Picker {
	return PickerFunc(func([]string) (string, error) { return word, nil })
}
