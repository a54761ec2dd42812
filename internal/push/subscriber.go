// Package push реализует клиент push-канала обновлений:
// постоянное websocket-соединение, из которого типизированные события
// доставляются в канал единственного потребителя.
package push

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"member-roster-service/internal/model"
)

// Subscriber держит соединение с push-каналом и читает события обновления.
// Соединение открывается один раз при создании и живёт до Close.
type Subscriber struct {
	conn   *websocket.Conn
	events chan model.UpdateEvent
	done   chan struct{}
	log    *slog.Logger

	closeOnce sync.Once
}

// Dial подключается к push-каналу и запускает цикл чтения.
func Dial(url string, log *slog.Logger) (*Subscriber, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial push channel: %w", err)
	}

	s := &Subscriber{
		conn:   conn,
		events: make(chan model.UpdateEvent, 16),
		done:   make(chan struct{}),
		log:    log,
	}
	go s.readLoop()
	return s, nil
}

// Events возвращает канал входящих событий. Канал закрывается,
// когда соединение обрывается или вызван Close.
func (s *Subscriber) Events() <-chan model.UpdateEvent {
	return s.events
}

// Close разрывает соединение. Цикл чтения завершится и закроет канал событий.
func (s *Subscriber) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	return err
}

func (s *Subscriber) readLoop() {
	defer close(s.events)
	defer s.Close()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.log.Error("push read error", slog.Any("err", err))
			}
			return
		}

		var ev model.UpdateEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			// Битые кадры пропускаем, соединение не рвём
			s.log.Error("push decode error", slog.Any("err", err))
			continue
		}

		// Отправка не должна держать горутину вечно: если потребитель
		// ушёл и буфер полон, Close обязан нас разблокировать
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}
