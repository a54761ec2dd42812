// Package storage реализует порт персистентного key-value хранилища,
// в котором живёт срез сессии между перезапусками клиента.
package storage

// SessionStorage описывает контракт хранилища для стора:
// простые get/set/remove по строковому ключу.
type SessionStorage interface {
	// Get возвращает значение по ключу или nil, если ключа нет.
	Get(key string) ([]byte, error)
	// Set записывает значение по ключу, перезаписывая существующее.
	Set(key string, value []byte) error
	// Remove удаляет ключ. Отсутствие ключа ошибкой не считается.
	Remove(key string) error
	// Close освобождает ресурсы хранилища.
	Close() error
}
