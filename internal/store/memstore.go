package store

import (
	"sync"

	"parques/internal/game"
)

// MemoryStore is the in-process game registry. State lives here for the
// lifetime of the process; there is no persistence behind it.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: map[string]*game.Game{},
	}
}

func (m *MemoryStore) Get(id string) (*game.Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	return g, ok
}

func (m *MemoryStore) Save(g *game.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID()] = g
}

func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}
