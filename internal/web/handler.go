package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/video-summary/internal/processor"
)

const maxFormBytes = 1 << 20

type pageData struct {
	Title       string
	Description string
	URL         string
	Summary     string
	Failed      bool
}

type (
	SummarizeRequest struct {
		URL string `json:"url"`
	}

	SummarizeResponse struct {
		Summary string `json:"summary,omitempty"`
		Error   string `json:"error,omitempty"`
	}
)

func (s *implServer) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pageData{})
}

// submit runs the chain synchronously for the posted URL and shows the result in place.
func (s *implServer) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	videoURL := strings.TrimSpace(r.PostFormValue("url"))
	data := pageData{URL: videoURL}

	if videoURL == "" {
		data.Summary = processor.FailureMarker + " Please enter a video URL."
		data.Failed = true
		s.render(w, r, data)
		return
	}

	data.Summary = s.processor.Summarize(r.Context(), videoURL)
	data.Failed = strings.HasPrefix(data.Summary, processor.FailureMarker)
	s.render(w, r, data)
}

func (s *implServer) summarizeJSON(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, SummarizeResponse{Error: "invalid JSON body"})
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		s.writeJSON(w, r, http.StatusBadRequest, SummarizeResponse{Error: "url is required"})
		return
	}

	summary, err := s.processor.Process(r.Context(), req.URL)
	if err != nil {
		s.logger.Warn(r.Context(), "Summary failed for %s: %v", req.URL, err)
		s.writeJSON(w, r, http.StatusUnprocessableEntity, SummarizeResponse{Error: processor.Message(err)})
		return
	}

	s.writeJSON(w, r, http.StatusOK, SummarizeResponse{Summary: summary})
}

func (s *implServer) render(w http.ResponseWriter, r *http.Request, data pageData) {
	data.Title = s.cfg.Title
	data.Description = s.cfg.Description

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error(r.Context(), "Failed to render page: %v", err)
	}
}

func (s *implServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(r.Context(), "Failed to write response: %v", err)
	}
}
