package http

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"member-roster-service/internal/model"
)

// Hub держит websocket-подписчиков push-канала и рассылает им
// события обновления данных.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub создаёт пустой hub. Origin не проверяется: канал поднимается
// тем же dev-сервером, что и API.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// HandleWS апгрейдит запрос до websocket и регистрирует подписчика.
// Входящие сообщения игнорируются: канал односторонний, чтение нужно
// только чтобы заметить разрыв.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws upgrade", slog.Any("err", err))
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast отправляет событие всем подписчикам. Соединения,
// в которые не удалось записать, отбрасываются.
// Записи идут под мьютексом hub: у gorilla не больше одного
// пишущего на соединение, а Broadcast зовут обработчики мутаций
// из параллельных запросов.
func (h *Hub) Broadcast(ev model.UpdateEvent) {
	h.mu.Lock()
	var failed []*websocket.Conn
	for c := range h.conns {
		if err := c.WriteJSON(ev); err != nil {
			h.log.Error("ws broadcast", slog.Any("err", err))
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		delete(h.conns, c)
	}
	h.mu.Unlock()

	for _, c := range failed {
		_ = c.Close()
	}
}

// Close разрывает все соединения.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}
