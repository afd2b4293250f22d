// internal/daily/daily.go
//
// Date-seeded secret selection: every game started on the same UTC day gets
// the same word. The index is HMAC-SHA256(salt, "YYYY-MM-DD") mod len(words),
// so the sequence cannot be predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Picker chooses the word of the day. It satisfies game.Picker.
type Picker struct {
	Salt string
	Now  func() time.Time // defaults to time.Now
}

// NewPicker returns a Picker using the wall clock.
func NewPicker(salt string) *Picker {
	return &Picker{Salt: salt, Now: time.Now}
}

// Pick returns words[WordIndex(today)].
func (p *Picker) Pick(words []string) (string, error) {
	if len(words) == 0 {
		return "", errors.New("daily: no words")
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return words[WordIndex(now(), p.Salt, len(words))], nil
}
