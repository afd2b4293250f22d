// internal/words/library.go
//
// Library couples the in-memory Dictionary with a persistence collaborator.
//
// Initialization behavior (Load):
//  1. Read the persisted list. A failing store is logged and treated as empty.
//  2. If nothing usable was persisted, fall back to the bundled list. When the
//     store loaded cleanly it is written back so the next start skips the
//     fallback; after a load error the stored list is left untouched.
//  3. If the dictionary is still empty, return ErrEmptyDictionary.
//
// Entries that are not valid words (wrong length, letters outside the alphabet)
// are skipped with a warning.

package words

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyDictionary means no word is available, so no secret can be chosen.
	ErrEmptyDictionary = errors.New("dictionary is empty")

	// ErrDictionaryLoad wraps persistence failures while loading.
	ErrDictionaryLoad = errors.New("dictionary load failed")
)

// Persister loads and saves the ordered word list.
// Implementations live in internal/dictstore.
type Persister interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, words []string) error
}

// Options configures Load.
type Options struct {
	WordLength int
	Alphabet   Alphabet
	// Bundled returns the default list shipped with the binary. Optional.
	Bundled func() ([]string, error)
}

// Library is a Dictionary whose additions are saved through a Persister.
type Library struct {
	mu    sync.Mutex // serializes add+save so saves land in order
	dict  *Dictionary
	store Persister
}

// Load builds a Library from store, falling back to opts.Bundled.
// store may be nil, in which case only the bundled list is used and nothing is saved.
func Load(ctx context.Context, store Persister, opts Options) (*Library, error) {
	dict := NewDictionary(opts.WordLength, opts.Alphabet)

	// a failed load must not be overwritten by the bundled list
	cacheBundled := store != nil
	if store != nil {
		persisted, err := store.Load(ctx)
		if err != nil {
			cacheBundled = false
			log.Warn().Err(fmt.Errorf("%w: %v", ErrDictionaryLoad, err)).Msg("falling back to bundled word list")
		} else {
			fill(dict, persisted, "persisted")
		}
	}

	if dict.Len() == 0 && opts.Bundled != nil {
		bundled, err := opts.Bundled()
		if err != nil {
			log.Error().Err(err).Msg("read bundled word list")
		} else {
			fill(dict, bundled, "bundled")
		}
		if dict.Len() > 0 && cacheBundled {
			if err := store.Save(ctx, dict.Words()); err != nil {
				log.Warn().Err(err).Msg("cache bundled word list")
			}
		}
	}

	if dict.Len() == 0 {
		return nil, ErrEmptyDictionary
	}
	log.Info().Int("words", dict.Len()).Int("length", dict.WordLength()).Msg("dictionary loaded")
	return &Library{dict: dict, store: store}, nil
}

// NewLibrary wraps an existing dictionary; store may be nil.
func NewLibrary(dict *Dictionary, store Persister) *Library {
	return &Library{dict: dict, store: store}
}

// fill adds every valid word of list to dict and warns about the rest.
func fill(dict *Dictionary, list []string, source string) {
	skipped := 0
	for _, w := range list {
		if !dict.Valid(w) {
			skipped++
			continue
		}
		dict.Add(w)
	}
	if skipped > 0 {
		log.Warn().Str("source", source).Int("skipped", skipped).Msg("ignored invalid dictionary entries")
	}
}

// Dictionary returns the underlying dictionary.
func (l *Library) Dictionary() *Dictionary { return l.dict }

// Add appends w and persists the updated list.
// added is false if w was rejected; err reports a failed save (w stays in memory).
func (l *Library) Add(ctx context.Context, w string) (added bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.dict.Add(w) {
		return false, nil
	}
	log.Info().Str("word", Normalize(w)).Msg("dictionary word added")
	if l.store == nil {
		return true, nil
	}
	if err := l.store.Save(ctx, l.dict.Words()); err != nil {
		return true, fmt.Errorf("save dictionary: %w", err)
	}
	return true, nil
}
