package storage

import (
	"fmt"

	"github.com/boltdb/bolt"
)

var sessionBucket = []byte("Session")

// Bolt — файловое хранилище на BoltDB: один bucket, значения как есть.
// Переживает перезапуск процесса, что и требуется срезу сессии.
type Bolt struct {
	db *bolt.DB
}

// NewBolt открывает (или создаёт) файл хранилища по указанному пути.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Get возвращает значение по ключу или nil, если ключа нет.
func (b *Bolt) Get(key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(sessionBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return out, nil
}

// Set записывает значение по ключу.
func (b *Bolt) Set(key string, value []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Remove удаляет ключ.
func (b *Bolt) Remove(key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Close закрывает файл БД.
func (b *Bolt) Close() error {
	return b.db.Close()
}
