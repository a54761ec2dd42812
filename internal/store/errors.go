package store

import "errors"

// ErrUnknownMember возвращается при попытке обновить участника,
// которого нет в локальном ростере.
var ErrUnknownMember = errors.New("unknown member")

// Фиксированные сообщения, которые действия кладут в поле ошибки сессии.
// Наружу уходит только человекочитаемая строка, детали остаются в логе.
const (
	msgFetchFailed        = "Failed to load members"
	msgInvalidCredentials = "Invalid email or password"
	msgLoginFailed        = "Login failed. Please try again"
	msgAddFailed          = "Failed to add member"
	msgUpdateFailed       = "Failed to update member"
	msgRemoveFailed       = "Failed to delete member"
)
