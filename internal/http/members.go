package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"member-roster-service/internal/model"
	"member-roster-service/internal/service"
)

func (h *Handler) handleMembersList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "members_list"

	ctx := r.Context()
	members, err := h.Members.List(ctx)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	// Коллекция отдаётся плоским массивом, включая пароли:
	// клиент сверяет их локально при логине
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(members)
}

func (h *Handler) handleMemberCreate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "member_create"

	var req model.User
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	if err := ValidateMember(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	ctx := r.Context()
	created, err := h.Members.Create(ctx, req)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.broadcastMembers(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

func (h *Handler) handleMemberReplace(w http.ResponseWriter, r *http.Request) {
	const handlerName = "member_replace"

	id := chi.URLParam(r, "id")

	var req model.User
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	if err := ValidateMember(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	ctx := r.Context()
	updated, err := h.Members.Replace(ctx, id, req)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.broadcastMembers(ctx)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

func (h *Handler) handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "member_delete"

	id := chi.URLParam(r, "id")

	ctx := r.Context()
	if err := h.Members.Delete(ctx, id); err != nil {
		h.writeDeleteError(w, handlerName, err)
		return
	}

	h.broadcastMembers(ctx)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{}`))
}

// writeDeleteError пишет ошибку DELETE в плоском формате {"error": msg}:
// именно его клиент показывает пользователю как сообщение сервера.
func (h *Handler) writeDeleteError(w http.ResponseWriter, handlerName string, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	var appErr *service.AppError
	if errors.As(err, &appErr) {
		status = appErr.Status
		msg = appErr.Message
	}

	h.Log.Error("handler error",
		slog.String("handler", handlerName),
		slog.String("message", msg),
		slog.Any("err", err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(deleteErrorResponse{Error: msg})
}
