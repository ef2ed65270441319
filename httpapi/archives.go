package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/rustyeddy/cryptojournal/journal"
)

func monthKey(r *http.Request) (journal.MonthKey, error) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		return journal.MonthKey{}, err
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		return journal.MonthKey{}, err
	}
	return journal.NewMonthKey(year, month)
}

// HandleListArchives returns archives oldest first, or the twelve
// calendar-month groups with ?group=month.
func (h *Handler) HandleListArchives(w http.ResponseWriter, r *http.Request) {
	ledger := h.tracker.Archives()
	if r.URL.Query().Get("group") == "month" {
		h.respondSuccess(w, "", ledger.ByCalendarMonth())
		return
	}
	chrono := ledger.Chronological()
	if chrono == nil {
		chrono = archive.Ledger{}
	}
	h.respondSuccess(w, "", chrono)
}

func (h *Handler) findArchive(w http.ResponseWriter, r *http.Request) (archive.Archive, bool) {
	k, err := monthKey(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return archive.Archive{}, false
	}
	a, ok := h.tracker.Archive(k)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("no archive for %s", k.Label()))
		return archive.Archive{}, false
	}
	return a, true
}

func (h *Handler) HandleGetArchive(w http.ResponseWriter, r *http.Request) {
	if a, ok := h.findArchive(w, r); ok {
		h.respondSuccess(w, "", a)
	}
}

func (h *Handler) HandleDeleteArchive(w http.ResponseWriter, r *http.Request) {
	k, err := monthKey(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.tracker.DeleteArchive(r.Context(), k) {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("no archive for %s", k.Label()))
		return
	}
	h.respondSuccess(w, "archive deleted", nil)
}

func (h *Handler) HandleArchiveCSV(w http.ResponseWriter, r *http.Request) {
	if a, ok := h.findArchive(w, r); ok {
		writeCSV(w, h, journal.CSVFileName(a.Key()), a.Trades)
	}
}

func (h *Handler) HandleArchiveOrg(w http.ResponseWriter, r *http.Request) {
	a, ok := h.findArchive(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := archive.WriteOrg(&buf, a); err != nil {
		h.respondFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/org; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) HandleCharts(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, "", h.tracker.Charts())
}

func writeCSV(w http.ResponseWriter, h *Handler, filename string, trades []journal.TradeRecord) {
	var buf bytes.Buffer
	if err := journal.WriteCSV(&buf, trades, nil); err != nil {
		h.respondFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(buf.Bytes())
}
