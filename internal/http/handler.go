package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"member-roster-service/internal/model"
	"member-roster-service/internal/service"
)

// MembersService описывает контракт сервиса участников для HTTP-слоя.
type MembersService interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	Replace(ctx context.Context, id string, u model.User) (model.User, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	Members MembersService
	Hub     *Hub
	Log     *slog.Logger
}

func NewHandler(members MembersService, hub *Hub, log *slog.Logger) *Handler {
	return &Handler{
		Members: members,
		Hub:     hub,
		Log:     log,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// API дергается браузерным фронтендом с другого origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(countRequests)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.handleMembersList)
		r.Post("/", h.handleMemberCreate)
		r.Put("/{id}", h.handleMemberReplace)
		r.Delete("/{id}", h.handleMemberDelete)
	})

	if h.Hub != nil {
		r.Get("/ws", h.Hub.HandleWS)
	}

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	appErr, ok := err.(*service.AppError)
	if !ok {
		appErr = &service.AppError{
			Code:    "INTERNAL",
			Message: "internal error",
			Status:  http.StatusInternalServerError,
			Err:     err,
		}
	}

	h.Log.Error("handler error",
		slog.String("handler", handlerName),
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.Any("err", appErr.Err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)

	resp := errorResponse{}
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// broadcastMembers рассылает подписчикам push-канала полный актуальный
// ростер после успешной мутации. Ошибка рассылки мутацию не отменяет.
func (h *Handler) broadcastMembers(ctx context.Context) {
	if h.Hub == nil {
		return
	}

	members, err := h.Members.List(ctx)
	if err != nil {
		h.Log.Error("broadcast members", slog.Any("err", err))
		return
	}

	data, err := json.Marshal(members)
	if err != nil {
		h.Log.Error("broadcast members", slog.Any("err", err))
		return
	}

	h.Hub.Broadcast(model.UpdateEvent{Type: model.EventTypeMembers, Data: data})
}
