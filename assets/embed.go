// Package assets embeds the bundled default word list.
//
// words.json is a JSON array of upper-case five-letter words, the same
// format the file store persists. It seeds the dictionary on first start.
package assets

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed words.json
var FS embed.FS

// BundledWords returns the embedded default word list.
func BundledWords() ([]string, error) {
	b, err := FS.ReadFile("words.json")
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse words.json: %w", err)
	}
	return out, nil
}
