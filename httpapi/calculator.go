package httpapi

import (
	"net/http"

	"github.com/rustyeddy/cryptojournal/goal"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/risk"
	"github.com/shopspring/decimal"
)

type PreviewResponse struct {
	Shown   bool           `json:"shown"`
	Preview risk.Preview   `json:"preview"`
	Check   *risk.Decision `json:"check,omitempty"`
}

// HandlePreview runs the live trade calculator plus the advisory checks
// against the adaptive limits for the current balance.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var in journal.TradeInput
	if err := decode(w, r, &in); err != nil {
		h.respondFailure(w, err)
		return
	}

	p, shown := risk.PreviewTrade(in.Setup())
	resp := PreviewResponse{Shown: shown, Preview: p}

	wallet := h.tracker.StartBalance()
	if shown && wallet.IsPositive() {
		sizing := risk.AdaptiveSizing(wallet.InexactFloat64(), h.volatility())
		d := risk.Evaluate(risk.PolicyFor(sizing, risk.DefaultMinRR), in.Intent(wallet))
		resp.Check = &d
	}
	h.respondSuccess(w, "", resp)
}

type SizingRequest struct {
	Wallet     *decimal.Decimal `json:"wallet,omitempty"`
	Volatility *float64         `json:"volatility,omitempty"`
	Entry      decimal.Decimal  `json:"entry"`
	StopLoss   decimal.Decimal  `json:"sl"`
	TakeProfit decimal.Decimal  `json:"tp"`
}

type SizingResponse struct {
	Sizing        risk.Sizing     `json:"sizing"`
	Volatility    *float64        `json:"volatility,omitempty"`
	TargetProfit  decimal.Decimal `json:"targetProfit"`
	TargetBalance decimal.Decimal `json:"targetBalance"`
	Position      *risk.Result    `json:"position,omitempty"`
}

// HandleSizing suggests risk and leverage. Wallet defaults to the working
// balance and volatility to the live ticker's 24h change. With entry and
// stop it also sizes the position.
func (h *Handler) HandleSizing(w http.ResponseWriter, r *http.Request) {
	var req SizingRequest
	if err := decode(w, r, &req); err != nil {
		h.respondFailure(w, err)
		return
	}

	wallet := h.tracker.StartBalance()
	if req.Wallet != nil {
		wallet = *req.Wallet
	}
	if !wallet.IsPositive() {
		h.respondError(w, http.StatusBadRequest, "wallet must be positive")
		return
	}

	vol := req.Volatility
	if vol == nil {
		vol = h.volatility()
	}

	sizing := risk.AdaptiveSizing(wallet.InexactFloat64(), vol)
	target := goal.Target(wallet, h.tracker.Settings())
	resp := SizingResponse{
		Sizing:        sizing,
		Volatility:    vol,
		TargetProfit:  target,
		TargetBalance: wallet.Add(target),
	}

	if req.Entry.IsPositive() && req.StopLoss.IsPositive() {
		pos := risk.SizePosition(risk.Inputs{
			Wallet:      wallet.InexactFloat64(),
			RiskPercent: sizing.RiskPercent,
			EntryPrice:  req.Entry.InexactFloat64(),
			StopPrice:   req.StopLoss.InexactFloat64(),
			TakeProfit:  req.TakeProfit.InexactFloat64(),
			Leverage:    float64(sizing.Leverage),
		})
		resp.Position = &pos
	}
	h.respondSuccess(w, "", resp)
}

// volatility is the live 24h change, or nil when the feed is off or down.
func (h *Handler) volatility() *float64 {
	if h.watcher == nil {
		return nil
	}
	st := h.watcher.Status()
	if !st.Online {
		return nil
	}
	v := st.Ticker.Volatility()
	return &v
}
