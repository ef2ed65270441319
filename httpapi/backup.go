package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/rustyeddy/cryptojournal/backup"
)

// HandleExport downloads the whole journal as a backup file.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	b := h.tracker.Export()

	var buf bytes.Buffer
	if err := backup.Encode(&buf, b); err != nil {
		h.respondFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.FileName(b.ExportDate)))
	_, _ = w.Write(buf.Bytes())
}

// HandleImport replaces the journal with the posted backup. A malformed
// file is rejected with 400 and changes nothing.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	b, err := backup.Decode(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	h.tracker.Import(r.Context(), b)
	h.respondSuccess(w, "data imported", map[string]int{
		"trades":   len(b.CurrentMonthTrades),
		"archives": len(b.MonthlyArchives),
	})
}
