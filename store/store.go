package store

import (
	"sync"

	"continents/continent"
)

// Store is the process-lifetime table of continents, keyed by name.
// There is no delete: records only ever get added or replaced.
type Store struct {
	mu sync.RWMutex
	m  map[string]continent.Continent
}

func New(seed map[string]continent.Continent) *Store {
	st := &Store{m: make(map[string]continent.Continent, len(seed))}
	for k, v := range seed {
		st.m[k] = v
	}
	return st
}

// Get reports whether key is present. A miss is not an error.
func (st *Store) Get(key string) (continent.Continent, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	c, ok := st.m[key]
	return c, ok
}

// Put stores c under key, replacing whatever was there. key is taken
// as given; it is up to the caller to pass c.Name.
func (st *Store) Put(key string, c continent.Continent) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.m[key] = c
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.m)
}
