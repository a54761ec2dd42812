// Package model содержит доменные структуры участников и сессии.
package model

// RoleMember — роль, которая принудительно выставляется всем создаваемым участникам.
const RoleMember = "member"

// User описывает участника: идентификатор, имя, e-mail, пароль и роль.
// Пароль хранится открытым текстом — это унаследованное поведение бэкенда,
// наружу пользователь всегда отдаётся через Sanitized.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

// Sanitized возвращает копию пользователя без пароля.
// Благодаря omitempty такая копия сериализуется без ключа password.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// UserPatch описывает частичное обновление участника.
// Nil-поле означает «оставить как есть».
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// Apply накладывает патч на существующую запись и возвращает полный
// объединённый объект. Идентификатор не меняется.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

// Session описывает персистентный срез состояния: авторизованный пользователь
// (без пароля) и флаг аутентификации. Именно эти два поля переживают перезапуск.
type Session struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}
