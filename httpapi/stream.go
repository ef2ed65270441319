package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rustyeddy/cryptojournal/market"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleTickerStream upgrades to a websocket and pushes the ticker status
// each time the watcher completes a poll.
func (h *Handler) HandleTickerStream(w http.ResponseWriter, r *http.Request) {
	if h.watcher == nil {
		h.respondError(w, http.StatusNotFound, "ticker disabled")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// The client never sends data; reading only serves control frames and
	// notices when it goes away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(st market.Status) error {
		conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		return conn.WriteJSON(TickerResponse{Status: st, Display: st.Display()})
	}

	last := h.watcher.Status()
	if err := send(last); err != nil {
		return
	}

	tk := time.NewTicker(h.streamInterval)
	defer tk.Stop()
	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			return
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Debug("ticker stream ping failed", "error", err)
				return
			}
		case <-tk.C:
			st := h.watcher.Status()
			if st.CheckedAt.Equal(last.CheckedAt) {
				continue
			}
			last = st
			if err := send(st); err != nil {
				h.logger.Debug("ticker stream closed", "error", err)
				return
			}
		}
	}
}
