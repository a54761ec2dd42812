package repository

import (
	"context"
	"sync"

	"member-roster-service/internal/model"
)

// MemoryMemberRepo — репозиторий участников в памяти. Используется
// для локальной разработки и e2e-тестов, когда DB_DSN не задан.
// Порядок участников — порядок создания.
type MemoryMemberRepo struct {
	mu      sync.RWMutex
	members []model.User
}

// NewMemoryMemberRepo создаёт пустой in-memory репозиторий.
func NewMemoryMemberRepo() *MemoryMemberRepo {
	return &MemoryMemberRepo{}
}

// Seed наполняет репозиторий начальными участниками как есть.
func (r *MemoryMemberRepo) Seed(members []model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = append([]model.User(nil), members...)
}

// List возвращает копию списка участников в порядке создания.
func (r *MemoryMemberRepo) List(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, len(r.members))
	copy(out, r.members)
	return out, nil
}

// Create добавляет участника в конец списка.
func (r *MemoryMemberRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members = append(r.members, u)
	return u, nil
}

// Replace целиком перезаписывает запись участника.
// Если участник не найден, возвращает ErrMemberNotFound.
func (r *MemoryMemberRepo) Replace(ctx context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.members {
		if r.members[i].ID == u.ID {
			r.members[i] = u
			return u, nil
		}
	}
	return model.User{}, ErrMemberNotFound
}

// Delete удаляет участника, сохраняя порядок остальных.
// Если участник не найден, возвращает ErrMemberNotFound.
func (r *MemoryMemberRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.members {
		if r.members[i].ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return ErrMemberNotFound
}
