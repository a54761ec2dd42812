// Package config читает конфигурацию из переменных окружения
// с localhost-значениями по умолчанию.
package config

import "os"

// Config собирает настройки клиента и сервера в одном месте.
type Config struct {
	// APIBaseURL — базовый адрес REST API коллекции участников.
	APIBaseURL string
	// PushURL — адрес push-канала обновлений (websocket).
	PushURL string
	// StoragePath — путь к файлу локального хранилища сессии.
	StoragePath string
	// StorageKey — ключ, под которым хранится сериализованный срез сессии.
	StorageKey string
	// ListenAddr — адрес, на котором слушает memberd.
	ListenAddr string
	// DatabaseDSN — строка подключения к PostgreSQL; пустая строка
	// означает in-memory репозиторий.
	DatabaseDSN string
}

// Load читает конфигурацию из окружения. Обязательных переменных нет:
// для локальной разработки всё работает на дефолтах.
func Load() Config {
	return Config{
		APIBaseURL:  getEnv("MEMBERS_API_URL", "http://localhost:8080"),
		PushURL:     getEnv("MEMBERS_PUSH_URL", "ws://localhost:8080/ws"),
		StoragePath: getEnv("SESSION_STORAGE_PATH", "roster.db"),
		StorageKey:  getEnv("SESSION_STORAGE_KEY", "currentUser"),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		DatabaseDSN: os.Getenv("DB_DSN"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
