package http

import (
	"regexp"

	"member-roster-service/internal/model"
	"member-roster-service/internal/service"
)

// Регулярка для минимальной проверки e-mail
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// ValidateMember Валидация тела для POST /members и PUT /members/{id}
func ValidateMember(u model.User) error {
	if u.Name == "" {
		return service.ErrBadRequest("name is required")
	}
	if u.Email == "" {
		return service.ErrBadRequest("email is required")
	}
	if !reEmail.MatchString(u.Email) {
		return service.ErrBadRequest("email must look like user@host")
	}
	if u.Password == "" {
		return service.ErrBadRequest("password is required")
	}
	return nil
}
