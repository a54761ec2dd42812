package http_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "member-roster-service/internal/http"
	"member-roster-service/internal/http/mocks"
	"member-roster-service/internal/model"
	"member-roster-service/internal/service"
)

var testLogger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func TestHandler_MembersList(t *testing.T) {
	members := []model.User{
		{ID: "1", Name: "Alice", Email: "a@x.com", Password: "p1", Role: "member"},
	}

	svc := new(mocks.MembersService)
	svc.On("List", mock.Anything).Return(members, nil)

	h := httpapi.NewHandler(svc, nil, testLogger)

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Коллекция — плоский массив, пароли присутствуют
	var got []model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].Password)
	svc.AssertExpectations(t)
}

func TestHandler_MemberCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockBehavior   func(svc *mocks.MembersService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"name":"Alice","email":"a@x.com","password":"p1"}`,
			mockBehavior: func(svc *mocks.MembersService) {
				svc.On("Create", mock.Anything, mock.AnythingOfType("model.User")).
					Return(model.User{ID: "1", Name: "Alice", Email: "a@x.com", Role: "member"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Bad Request: Invalid JSON",
			body: `{"name": "broken`,
			mockBehavior: func(svc *mocks.MembersService) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Request: Missing email",
			body: `{"name":"Alice","password":"p1"}`,
			mockBehavior: func(svc *mocks.MembersService) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Request: Malformed email",
			body: `{"name":"Alice","email":"not-an-email","password":"p1"}`,
			mockBehavior: func(svc *mocks.MembersService) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Internal Error",
			body: `{"name":"Alice","email":"a@x.com","password":"p1"}`,
			mockBehavior: func(svc *mocks.MembersService) {
				svc.On("Create", mock.Anything, mock.Anything).
					Return(model.User{}, service.ErrInternal("failed to create member", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MembersService)
			tt.mockBehavior(svc)

			h := httpapi.NewHandler(svc, nil, testLogger)

			req := httptest.NewRequest(http.MethodPost, "/members", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_MemberReplace(t *testing.T) {
	svc := new(mocks.MembersService)
	svc.On("Replace", mock.Anything, "1", mock.MatchedBy(func(u model.User) bool {
		return u.Name == "Alice Cooper"
	})).Return(model.User{ID: "1", Name: "Alice Cooper", Email: "a@x.com", Role: "member"}, nil)

	h := httpapi.NewHandler(svc, nil, testLogger)

	body := `{"name":"Alice Cooper","email":"a@x.com","password":"p1"}`
	req := httptest.NewRequest(http.MethodPut, "/members/1", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_MemberDelete(t *testing.T) {
	tests := []struct {
		name           string
		mockBehavior   func(svc *mocks.MembersService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			mockBehavior: func(svc *mocks.MembersService) {
				svc.On("Delete", mock.Anything, "1").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not Found: flat error body",
			mockBehavior: func(svc *mocks.MembersService) {
				svc.On("Delete", mock.Anything, "1").
					Return(service.ErrNotFound("member not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "member not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MembersService)
			tt.mockBehavior(svc)

			h := httpapi.NewHandler(svc, nil, testLogger)

			req := httptest.NewRequest(http.MethodDelete, "/members/1", nil)
			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var resp struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Health(t *testing.T) {
	h := httpapi.NewHandler(new(mocks.MembersService), nil, testLogger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
