package httpapi

import (
	"net/http"

	"github.com/rustyeddy/cryptojournal/market"
)

type TickerResponse struct {
	market.Status
	Display string `json:"display"`
}

// HandleTicker returns the last polled price. The feed being down is not
// an error; the body says "Offline".
func (h *Handler) HandleTicker(w http.ResponseWriter, r *http.Request) {
	if h.watcher == nil {
		h.respondError(w, http.StatusNotFound, "ticker disabled")
		return
	}
	st := h.watcher.Status()
	h.respondSuccess(w, "", TickerResponse{Status: st, Display: st.Display()})
}
