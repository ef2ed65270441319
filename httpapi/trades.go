package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/shopspring/decimal"
)

// HandleListTrades returns the working month's trades, optionally narrowed
// by ?period=today|week|month.
func (h *Handler) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	p, err := journal.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	trades := h.tracker.Trades(p)
	if trades == nil {
		trades = []journal.TradeRecord{}
	}
	h.respondSuccess(w, "", trades)
}

func (h *Handler) HandleAddTrade(w http.ResponseWriter, r *http.Request) {
	var in journal.TradeInput
	if err := decode(w, r, &in); err != nil {
		h.respondFailure(w, err)
		return
	}

	rec, err := h.tracker.AddTrade(r.Context(), in)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, SuccessResponse{Message: "trade added", Data: rec})
}

func (h *Handler) HandleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := journal.TradeID(mux.Vars(r)["id"])
	if !h.tracker.DeleteTrade(r.Context(), id) {
		h.respondError(w, http.StatusNotFound, "trade not found")
		return
	}
	h.respondSuccess(w, "trade deleted", nil)
}

func (h *Handler) HandleClearTrades(w http.ResponseWriter, r *http.Request) {
	h.tracker.ClearTrades(r.Context())
	h.respondSuccess(w, "trades cleared", nil)
}

// HandleTradesCSV downloads the working month as CSV.
func (h *Handler) HandleTradesCSV(w http.ResponseWriter, r *http.Request) {
	st := h.tracker.State()
	writeCSV(w, h, journal.CSVFileName(st.Working.Key), st.Working.Trades)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, "", h.tracker.Stats())
}

func (h *Handler) HandleGoal(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, "", h.tracker.Goal())
}

type balanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

func (h *Handler) HandleSetBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if err := decode(w, r, &req); err != nil {
		h.respondFailure(w, err)
		return
	}
	if err := h.tracker.SetStartBalance(r.Context(), req.Balance); err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondSuccess(w, "balance updated", h.tracker.Goal())
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, "", h.tracker.Settings())
}

// HandleUpdateSettings merges the body over the current settings, so a
// partial document only changes the fields it names.
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	s := h.tracker.Settings()
	if err := decode(w, r, &s); err != nil {
		h.respondFailure(w, err)
		return
	}
	if err := h.tracker.UpdateSettings(r.Context(), s); err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondSuccess(w, "settings saved", s)
}
