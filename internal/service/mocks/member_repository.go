// Package mocks содержит моки репозиториев для юнит-тестов сервисов.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"member-roster-service/internal/model"
)

// MemberRepository — мок репозитория участников.
type MemberRepository struct {
	mock.Mock
}

func (m *MemberRepository) List(ctx context.Context) ([]model.User, error) {
	ret := m.Called(ctx)

	var r0 []model.User
	if rf, ok := ret.Get(0).(func(context.Context) []model.User); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.User)
	}
	return r0, ret.Error(1)
}

func (m *MemberRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	ret := m.Called(ctx, u)

	var r0 model.User
	if rf, ok := ret.Get(0).(func(context.Context, model.User) model.User); ok {
		r0 = rf(ctx, u)
	} else {
		r0 = ret.Get(0).(model.User)
	}
	return r0, ret.Error(1)
}

func (m *MemberRepository) Replace(ctx context.Context, u model.User) (model.User, error) {
	ret := m.Called(ctx, u)

	var r0 model.User
	if rf, ok := ret.Get(0).(func(context.Context, model.User) model.User); ok {
		r0 = rf(ctx, u)
	} else {
		r0 = ret.Get(0).(model.User)
	}
	return r0, ret.Error(1)
}

func (m *MemberRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
