package contract

import "sort"

// MockState is an in-memory sdk.State for tests and dry runs. Snapshot/Restore emulate the host
// discarding a failed transaction.
type MockState struct {
	db map[string]string
}

func NewMockState() *MockState {
	return &MockState{db: make(map[string]string)}
}

func (m *MockState) Set(key, value string) {
	m.db[key] = value
}

func (m *MockState) Get(key string) *string {
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *MockState) Delete(key string) {
	delete(m.db, key)
}

// Len is the number of stored keys.
func (m *MockState) Len() int { return len(m.db) }

// Keys lists stored keys in byte order.
func (m *MockState) Keys() []string {
	keys := make([]string, 0, len(m.db))
	for k := range m.db {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot copies the current contents.
func (m *MockState) Snapshot() map[string]string {
	out := make(map[string]string, len(m.db))
	for k, v := range m.db {
		out[k] = v
	}
	return out
}

// Restore replaces the contents with a snapshot.
func (m *MockState) Restore(snap map[string]string) {
	m.db = make(map[string]string, len(snap))
	for k, v := range snap {
		m.db[k] = v
	}
}
