package web

import (
	"net/http"
	"os"
	"strings"

	"github.com/nguyentantai21042004/video-summary/internal/export"
)

// exportDocx turns the summary posted back by the page into a .docx download.
// Nothing is kept server-side once the response is written.
func (s *implServer) exportDocx(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	summary := strings.TrimSpace(r.PostFormValue("summary"))
	if summary == "" {
		http.Error(w, "summary is required", http.StatusBadRequest)
		return
	}
	source := strings.TrimSpace(r.PostFormValue("url"))

	tmp, err := os.CreateTemp("", "summary-*.docx")
	if err != nil {
		s.logger.Error(r.Context(), "Failed to create temp file: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	if err := export.WriteDocx(s.cfg.Title, source, summary, tmpPath); err != nil {
		s.logger.Error(r.Context(), "Failed to write docx: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		s.logger.Error(r.Context(), "Failed to read docx: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="video-summary.docx"`)
	_, _ = w.Write(data)
}
