package repository

import "errors"

var (
	// ErrMemberNotFound возвращается, если участник не найден в хранилище.
	ErrMemberNotFound = errors.New("member not found")
)
