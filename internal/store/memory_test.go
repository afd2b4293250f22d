package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/palabra/internal/game"
	"github.com/robalobadob/palabra/internal/words"
)

func newState(t *testing.T) *game.State {
	t.Helper()
	dict := words.NewDictionary(5, words.DefaultAlphabet())
	dict.Add("MANGO")
	g, err := game.New(game.DefaultConfig(), dict, game.FixedPicker("MANGO"))
	require.NoError(t, err)
	return g
}

func TestStore_CreateGetDelete(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore()
	s := m.Create(newState(t))
	require.NotEmpty(t, s.ID)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())

	m.Delete(s.ID)
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	m.Delete("missing")
}

func TestStore_UniqueIDs(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore()
	a := m.Create(newState(t))
	b := m.Create(newState(t))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStore_Reap(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	m := NewMemoryStore()
	m.now = func() time.Time { return clock }

	stale := m.Create(newState(t))
	fresh := m.Create(newState(t))
	stale.lastActive = base.Add(-2 * time.Hour)
	fresh.lastActive = base.Add(-time.Minute)

	assert.Equal(t, 1, m.Reap(time.Hour))
	_, err := m.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSession_DoSerializes(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore()
	s := m.Create(newState(t))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(g *game.State) {
				game.Dispatch(g, game.Command{Type: game.CmdLetter, Letter: "A"})
				game.Dispatch(g, game.Command{Type: game.CmdDelete})
			})
		}()
	}
	wg.Wait()

	s.Do(func(g *game.State) {
		assert.Equal(t, 0, g.Column())
	})
}
