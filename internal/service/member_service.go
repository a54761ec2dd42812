// Package service содержит бизнес-логику операций над коллекцией участников.
package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"

	"member-roster-service/internal/model"
	"member-roster-service/internal/repository"
)

// MemberRepository описывает контракт репозитория участников для бизнес-слоя.
type MemberRepository interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	Replace(ctx context.Context, u model.User) (model.User, error)
	Delete(ctx context.Context, id string) error
}

// MemberService инкапсулирует правила коллекции: серверное назначение
// идентификаторов и принудительную роль "member" при создании.
type MemberService struct {
	repo MemberRepository
}

// NewMemberService создаёт новый сервис для операций над участниками.
func NewMemberService(repo MemberRepository) *MemberService {
	return &MemberService{repo: repo}
}

// List возвращает всех участников в порядке создания.
func (s *MemberService) List(ctx context.Context) ([]model.User, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal("failed to list members", err)
	}
	return members, nil
}

// Create назначает участнику идентификатор, принудительно выставляет
// роль "member" и сохраняет запись.
func (s *MemberService) Create(ctx context.Context, u model.User) (model.User, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return model.User{}, ErrInternal("failed to generate id", err)
	}
	u.ID = id.String()
	u.Role = model.RoleMember

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return model.User{}, ErrInternal("failed to create member", err)
	}
	return created, nil
}

// Replace целиком перезаписывает запись участника по идентификатору из пути.
func (s *MemberService) Replace(ctx context.Context, id string, u model.User) (model.User, error) {
	u.ID = id

	updated, err := s.repo.Replace(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return model.User{}, ErrNotFound("member not found")
		}
		return model.User{}, ErrInternal("failed to update member", err)
	}
	return updated, nil
}

// Delete удаляет участника по идентификатору.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrBadRequest("id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return ErrNotFound("member not found")
		}
		return ErrInternal("failed to delete member", err)
	}
	return nil
}
