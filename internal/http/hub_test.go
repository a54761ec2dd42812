package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "member-roster-service/internal/http"
	"member-roster-service/internal/model"
)

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := httpapi.NewHub(testLogger)
	defer hub.Close()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	c1, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c1.Close()

	c2, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c2.Close()

	data, err := json.Marshal([]model.User{{ID: "1", Email: "a@x.com"}})
	require.NoError(t, err)

	// Регистрация подписчика завершается чуть позже рукопожатия,
	// поэтому шлём события периодически, пока оба клиента не прочитают
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				hub.Broadcast(model.UpdateEvent{Type: model.EventTypeMembers, Data: data})
			}
		}
	}()

	for _, c := range []*websocket.Conn{c1, c2} {
		require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))

		var ev model.UpdateEvent
		require.NoError(t, c.ReadJSON(&ev))
		assert.Equal(t, model.EventTypeMembers, ev.Type)

		var users []model.User
		require.NoError(t, json.Unmarshal(ev.Data, &users))
		require.Len(t, users, 1)
		assert.Equal(t, "a@x.com", users[0].Email)
	}
}

func TestHub_ConcurrentBroadcasts(t *testing.T) {
	hub := httpapi.NewHub(testLogger)
	defer hub.Close()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Подписчик вычитывает всё, чтобы буфер записи не упирался
	received := make(chan struct{}, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			select {
			case received <- struct{}{}:
			default:
			}
		}
	}()

	data, err := json.Marshal([]model.User{{ID: "1", Email: "a@x.com"}})
	require.NoError(t, err)
	ev := model.UpdateEvent{Type: model.EventTypeMembers, Data: data}

	// Параллельные мутации шлют в одно соединение: записи обязаны
	// сериализоваться внутри hub
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				hub.Broadcast(ev)
			}
		}()
	}
	wg.Wait()

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber received nothing")
	}
}
