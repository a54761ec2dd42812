package push_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"member-roster-service/internal/model"
	"member-roster-service/internal/push"
)

var upgrader = websocket.Upgrader{}

func newPushServer(t *testing.T, frames [][]byte) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for _, frame := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))
		}
		// Держим соединение открытым, пока клиент не отключится
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSubscriber_DeliversEvents(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	payload, err := json.Marshal([]model.User{{ID: "1", Email: "a@x.com"}})
	require.NoError(t, err)
	frame, err := json.Marshal(model.UpdateEvent{Type: model.EventTypeMembers, Data: payload})
	require.NoError(t, err)

	url := newPushServer(t, [][]byte{
		[]byte(`{broken json`), // пропускается без разрыва соединения
		frame,
	})

	sub, err := push.Dial(url, logger)
	require.NoError(t, err)
	defer sub.Close()

	select {
	case ev := <-sub.Events():
		assert.Equal(t, model.EventTypeMembers, ev.Type)

		var users []model.User
		require.NoError(t, json.Unmarshal(ev.Data, &users))
		require.Len(t, users, 1)
		assert.Equal(t, "a@x.com", users[0].Email)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestSubscriber_CloseEndsEvents(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	url := newPushServer(t, nil)

	sub, err := push.Dial(url, logger)
	require.NoError(t, err)

	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "events channel must be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestSubscriber_DialFailure(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_, err := push.Dial("ws://127.0.0.1:1/ws", logger)
	assert.Error(t, err)
}

func TestSubscriber_CloseUnblocksWithoutConsumer(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	payload, err := json.Marshal([]model.User{{ID: "1"}})
	require.NoError(t, err)
	frame, err := json.Marshal(model.UpdateEvent{Type: model.EventTypeMembers, Data: payload})
	require.NoError(t, err)

	// Кадров заметно больше ёмкости буфера: цикл чтения упрётся в отправку
	frames := make([][]byte, 64)
	for i := range frames {
		frames[i] = frame
	}
	url := newPushServer(t, frames)

	sub, err := push.Dial(url, logger)
	require.NoError(t, err)

	// Потребителя нет; даём буферу заполниться
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, sub.Close())

	// После Close цикл чтения обязан завершиться и закрыть канал событий
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel not closed after Close")
		}
	}
}
