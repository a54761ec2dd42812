package repository

import (
	"context"
	"errors"
	"fmt"

	"member-roster-service/internal/model"

	"github.com/jackc/pgx/v5"
)

// MemberRepo реализует репозиторий участников на базе PostgreSQL.
// Порядок List стабилен: по времени создания записи.
type MemberRepo struct {
	db *Postgres
}

// NewMemberRepo создаёт новый экземпляр MemberRepo c переданным подключением к PostgreSQL.
func NewMemberRepo(db *Postgres) *MemberRepo {
	return &MemberRepo{db: db}
}

// EnsureSchema создаёт таблицу участников, если её ещё нет.
func (r *MemberRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS members (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    password   TEXT NOT NULL,
    role       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)
`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// List возвращает всех участников в порядке создания.
func (r *MemberRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id, name, email, password, role
FROM members
ORDER BY created_at, id
`)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return members, nil
}

// Create сохраняет нового участника с уже назначенным идентификатором.
func (r *MemberRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	row := r.db.Pool.QueryRow(ctx, `
INSERT INTO members (id, name, email, password, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, email, password, role
`, u.ID, u.Name, u.Email, u.Password, u.Role)

	var created model.User
	if err := row.Scan(&created.ID, &created.Name, &created.Email, &created.Password, &created.Role); err != nil {
		return model.User{}, fmt.Errorf("insert member: %w", err)
	}
	return created, nil
}

// Replace целиком перезаписывает запись участника.
// Если участник не найден, возвращает ErrMemberNotFound.
func (r *MemberRepo) Replace(ctx context.Context, u model.User) (model.User, error) {
	row := r.db.Pool.QueryRow(ctx, `
UPDATE members
SET name = $2, email = $3, password = $4, role = $5
WHERE id = $1
RETURNING id, name, email, password, role
`, u.ID, u.Name, u.Email, u.Password, u.Role)

	var updated model.User
	if err := row.Scan(&updated.ID, &updated.Name, &updated.Email, &updated.Password, &updated.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrMemberNotFound
		}
		return model.User{}, fmt.Errorf("update member: %w", err)
	}
	return updated, nil
}

// Delete удаляет участника по идентификатору.
// Если участник не найден, возвращает ErrMemberNotFound.
func (r *MemberRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}
