// Package store реализует SessionStore — состояние аутентификации
// и кэш ростера участников поверх REST API, push-канала и
// персистентного хранилища сессии.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"member-roster-service/internal/api"
	"member-roster-service/internal/model"
	"member-roster-service/internal/storage"
)

// MembersAPI описывает контракт REST-клиента коллекции участников.
type MembersAPI interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id string) error
}

// Navigator выполняет полный переход приложения на указанный путь.
// Вызывается стором только при выходе из сессии.
type Navigator func(path string)

// SessionStore хранит ростер, сессию и последнюю ошибку действий.
// Все мутации проходят под одним мьютексом; push-события применяются
// тем же кодом, что и ответы fetch — кто пришёл последним, тот и победил.
type SessionStore struct {
	api      MembersAPI
	storage  storage.SessionStorage
	key      string
	navigate Navigator
	log      *slog.Logger

	mu      sync.Mutex
	users   []model.User
	session model.Session
	errMsg  string
}

// NewSessionStore создаёт стор и восстанавливает персистентный срез сессии,
// если он есть в хранилище. Ошибки восстановления не фатальны: стор
// стартует анонимным.
func NewSessionStore(membersAPI MembersAPI, st storage.SessionStorage, key string, navigate Navigator, log *slog.Logger) *SessionStore {
	if navigate == nil {
		navigate = func(string) {}
	}

	s := &SessionStore{
		api:      membersAPI,
		storage:  st,
		key:      key,
		navigate: navigate,
		log:      log,
	}

	raw, err := st.Get(key)
	if err != nil {
		log.Error("restore session", slog.Any("err", err))
		return s
	}
	if raw == nil {
		return s
	}

	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		log.Error("restore session", slog.Any("err", err))
		return s
	}
	s.session = sess
	return s
}

// FetchUsers запрашивает коллекцию участников. На успех ростер заменяется
// целиком, на любую ошибку остаётся прежним, а в сессию кладётся
// фиксированное сообщение. Ошибка логируется, но наружу не отдаётся.
func (s *SessionStore) FetchUsers(ctx context.Context) {
	users, err := s.api.List(ctx)
	if err != nil {
		s.log.Error("fetch members", slog.Any("err", err))
		s.setError(msgFetchFailed)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
}

// Login обновляет ростер и ищет участника по e-mail (без учёта регистра)
// и точному паролю. Успех: пользователь без пароля сохраняется в сессию,
// срез сессии персистится, ошибка очищается, возвращается true.
// Несовпадение: фиксированное сообщение и false. Login никогда не паникует
// и не возвращает ошибку.
func (s *SessionStore) Login(ctx context.Context, email, password string) bool {
	// Освежаем ростер; его собственная политика ошибок нас устраивает
	s.FetchUsers(ctx)

	s.mu.Lock()
	var matched *model.User
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) && s.users[i].Password == password {
			matched = &s.users[i]
			break
		}
	}

	if matched == nil {
		s.errMsg = msgInvalidCredentials
		s.mu.Unlock()
		return false
	}

	user := matched.Sanitized()
	prev := s.session
	s.session = model.Session{User: &user, IsAuthenticated: true}
	s.errMsg = ""
	sess := s.session
	s.mu.Unlock()

	if err := s.persist(sess); err != nil {
		s.log.Error("persist session", slog.Any("err", err))
		// Откат к прежнему снимку: логин без сохранённого среза не
		// считается успешным, но и уводить сессию в anonymous мимо
		// Logout нельзя
		s.mu.Lock()
		s.session = prev
		s.errMsg = msgLoginFailed
		s.mu.Unlock()
		return false
	}

	return true
}

// Logout очищает персистентный срез, сбрасывает сессию и ростер
// и делает полный переход на корень приложения.
func (s *SessionStore) Logout() {
	if err := s.storage.Remove(s.key); err != nil {
		s.log.Error("clear session storage", slog.Any("err", err))
	}

	s.mu.Lock()
	s.session = model.Session{}
	s.users = nil
	s.errMsg = ""
	s.mu.Unlock()

	s.navigate("/")
}

// ClearError сбрасывает сообщение об ошибке.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Err возвращает текущее сообщение об ошибке; пустая строка — ошибки нет.
func (s *SessionStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Session возвращает снимок сессии. Пользователь копируется,
// чтобы вызывающий не мог мутировать внутреннее состояние.
func (s *SessionStore) Session() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}

// Users возвращает текущий ростер, у каждого участника убран пароль.
// Чистая синхронная операция, сети не касается.
func (s *SessionStore) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Sanitized())
	}
	return out
}

// AddMember отправляет нового участника с принудительной ролью "member"
// и на успех освежает ростер. Ошибка проглатывается: лог плюс сообщение.
func (s *SessionStore) AddMember(ctx context.Context, u model.User) {
	u.Role = model.RoleMember

	if err := s.api.Create(ctx, u); err != nil {
		s.log.Error("add member", slog.Any("err", err))
		s.setError(msgAddFailed)
		return
	}

	s.FetchUsers(ctx)
}

// UpdateMember находит участника в локальном ростере, накладывает патч
// и отправляет полный объединённый объект. Отсутствие участника локально —
// такой же проглатываемый отказ, как и ошибка сети.
func (s *SessionStore) UpdateMember(ctx context.Context, id string, patch model.UserPatch) {
	s.mu.Lock()
	var existing *model.User
	for i := range s.users {
		if s.users[i].ID == id {
			existing = &s.users[i]
			break
		}
	}
	if existing == nil {
		s.mu.Unlock()
		s.log.Error("update member", slog.String("id", id), slog.Any("err", ErrUnknownMember))
		s.setError(msgUpdateFailed)
		return
	}
	merged := patch.Apply(*existing)
	s.mu.Unlock()

	if err := s.api.Update(ctx, merged); err != nil {
		s.log.Error("update member", slog.String("id", id), slog.Any("err", err))
		s.setError(msgUpdateFailed)
		return
	}

	s.FetchUsers(ctx)
}

// RemoveMember удаляет участника. Только при подтверждённом успехе id
// вырезается из локального ростера (порядок остальных сохраняется)
// и ошибка очищается. Отказ кладёт в сессию сообщение сервера или
// дефолтное и — единственный из всех действий — возвращает ошибку наружу.
func (s *SessionStore) RemoveMember(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.log.Error("remove member", slog.String("id", id), slog.Any("err", err))

		msg := msgRemoveFailed
		var se *api.StatusError
		if errors.As(err, &se) && se.Message != "" {
			msg = se.Message
		}
		s.setError(msg)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			filtered = append(filtered, u)
		}
	}
	s.users = filtered
	s.errMsg = ""
	return nil
}

// SetUsers целиком заменяет ростер. Используется обработчиком push-событий.
func (s *SessionStore) SetUsers(users []model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]model.User(nil), users...)
}

// Run потребляет события push-канала до отмены контекста или закрытия
// канала. Обрабатывается только type == "members": полезная нагрузка
// становится новым ростером без слияния.
func (s *SessionStore) Run(ctx context.Context, events <-chan model.UpdateEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.apply(ev)
		}
	}
}

func (s *SessionStore) apply(ev model.UpdateEvent) {
	if ev.Type != model.EventTypeMembers {
		return
	}

	var users []model.User
	if err := json.Unmarshal(ev.Data, &users); err != nil {
		s.log.Error("apply push event", slog.Any("err", err))
		return
	}
	s.SetUsers(users)
}

func (s *SessionStore) persist(sess model.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.storage.Set(s.key, raw)
}

func (s *SessionStore) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}
