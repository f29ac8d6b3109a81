package matcherui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/matcher"
)

// matchResponse is the JSON response for the match endpoint.
type matchResponse struct {
	*matcher.Report
	// MatchHTML renders the raw match text when it was not JSON.
	MatchHTML string `json:"match_html,omitempty"`
	GapHTML   string `json:"gap_html,omitempty"`
}

func (u *UI) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form expected"})
		return
	}

	text, err := u.fileText(r, "file")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (u *UI) handleMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resumeText, err := u.input(r, "resume")
	if err != nil {
		writeError(w, err)
		return
	}
	jdText, err := u.input(r, "jd")
	if err != nil {
		writeError(w, err)
		return
	}

	u.runMu.Lock()
	report, err := (&matcher.Pipeline{Tools: u.tools}).Run(r.Context(), resumeText, jdText)
	u.runMu.Unlock()
	if err != nil {
		zlog.Error().Err(err).Msg("matcherui: match failed")
		writeError(w, err)
		return
	}

	resp := matchResponse{Report: report}
	if report.Match.Payload == nil {
		resp.MatchHTML, _ = u.md.Render(report.Match.Raw)
	}
	if report.GapError == "" {
		resp.GapHTML, _ = u.md.Render(report.GapSummary)
	}
	writeJSON(w, http.StatusOK, resp)
}

// input returns the text for prefix ("resume" or "jd"): an uploaded
// <prefix>_file wins over pasted <prefix>_text.
func (u *UI) input(r *http.Request, prefix string) (string, error) {
	if r.MultipartForm != nil && len(r.MultipartForm.File[prefix+"_file"]) > 0 {
		return u.fileText(r, prefix+"_file")
	}
	return r.FormValue(prefix + "_text"), nil
}

func (u *UI) fileText(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%w: field %q", errMissingFile, field)
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return "", errNotPDF
	}
	return u.extractor.Text(r.Context(), header.Filename, file)
}

var (
	errMissingFile = errors.New("a PDF file is required")
	errNotPDF      = errors.New("only PDF files are supported")
)

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	msg := err.Error()
	switch {
	case errors.Is(err, matcher.ErrEmptyInput):
		status = http.StatusBadRequest
		msg = "Please provide both Resume and Job Description content."
	case errors.Is(err, errMissingFile), errors.Is(err, errNotPDF):
		status = http.StatusBadRequest
	case errors.Is(err, document.ErrDocumentRead):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
