// Package wsfanout implements the optional single-subscriber websocket
// fan-out of queued trade events, grounded on the upstream handler's
// connected-flag guard and subscribe/poll/trim loop.
package wsfanout

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/kvstore"
)

const (
	dexEventListKey = "list:dex_events"
	pollInterval    = 500 * time.Millisecond
	subscribeMsg    = "subscribe_dex_trades"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub admits at most one live subscriber at a time via a mutex-guarded
// connected flag, matching the upstream's single-RwLock<bool> gate.
type Hub struct {
	store kvstore.Store

	mu        sync.Mutex
	connected bool
}

func New(store kvstore.Store) *Hub {
	return &Hub{store: store}
}

// Upgrade accepts a websocket connection if no other client is connected,
// then blocks serving it until it disconnects.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) error {
	if !h.acquire() {
		http.Error(w, "already have connected client", http.StatusConflict)
		return nil
	}
	defer h.release()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	h.serve(r.Context(), conn)
	return nil
}

func (h *Hub) acquire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connected {
		return false
	}
	h.connected = true
	return true
}

func (h *Hub) release() {
	h.mu.Lock()
	h.connected = false
	h.mu.Unlock()
}

func (h *Hub) serve(ctx context.Context, conn *websocket.Conn) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return
	}
	if string(msg) != subscribeMsg {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := h.store.LLen(ctx, dexEventListKey)
		if err != nil {
			logrus.WithError(err).Warn("wsfanout: llen failed")
			time.Sleep(pollInterval)
			continue
		}
		if n == 0 {
			time.Sleep(pollInterval)
			continue
		}

		raw, err := h.store.LRange(ctx, dexEventListKey, 0, n-1)
		if err != nil {
			logrus.WithError(err).Warn("wsfanout: lrange failed")
			time.Sleep(pollInterval)
			continue
		}

		evts := make([]events.Event, 0, len(raw))
		for _, r := range raw {
			var e events.Event
			if err := json.Unmarshal([]byte(r), &e); err != nil {
				continue
			}
			evts = append(evts, e)
		}

		body, err := json.Marshal(evts)
		if err != nil {
			logrus.WithError(err).Warn("wsfanout: marshal failed")
			time.Sleep(pollInterval)
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
			return
		}
		if err := h.store.LTrim(ctx, dexEventListKey, n, -1); err != nil {
			logrus.WithError(err).Warn("wsfanout: ltrim failed")
		}
		time.Sleep(pollInterval)
	}
}
