// Package repository содержит хранилища участников: PostgreSQL и in-memory.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres оборачивает пул соединений pgx.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres разбирает DSN, открывает пул и проверяет соединение.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (p *Postgres) Close() {
	p.Pool.Close()
}
