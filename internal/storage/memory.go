package storage

import "sync"

// Memory — хранилище в памяти. Используется в тестах и в сценариях,
// где переживать перезапуск не требуется.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory создаёт пустое in-memory хранилище.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get возвращает копию значения по ключу или nil, если ключа нет.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set записывает значение по ключу.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

// Remove удаляет ключ.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Close ничего не делает.
func (m *Memory) Close() error {
	return nil
}
