package kvstore

// MemoryStore is a map-backed Store. It is the test double and the
// degraded mode used when the on-device database cannot be opened.
type MemoryStore struct {
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

// Get returns the value for key, or ok=false if absent.
func (s *MemoryStore) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) {
	s.data[key] = value
}

// Remove deletes key.
func (s *MemoryStore) Remove(key string) {
	delete(s.data, key)
}

// Keys enumerates all stored keys.
func (s *MemoryStore) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
