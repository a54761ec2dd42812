// Package mocks содержит моки контрактов стора для юнит-тестов.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"member-roster-service/internal/model"
)

// MembersAPI — мок REST-клиента коллекции участников.
type MembersAPI struct {
	mock.Mock
}

func (m *MembersAPI) List(ctx context.Context) ([]model.User, error) {
	ret := m.Called(ctx)

	var r0 []model.User
	if rf, ok := ret.Get(0).(func(context.Context) []model.User); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.User)
	}
	return r0, ret.Error(1)
}

func (m *MembersAPI) Create(ctx context.Context, u model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MembersAPI) Update(ctx context.Context, u model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MembersAPI) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
