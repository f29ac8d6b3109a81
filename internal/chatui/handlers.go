package chatui

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/vikrambhat2/AgenticRAG/internal/chat"
	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/llm"
)

// uploadResponse is the JSON response for the upload endpoint.
type uploadResponse struct {
	Document string `json:"document"`
	Chunks   int    `json:"chunks"`
}

// messageView is one transcript entry as shown in the page.
type messageView struct {
	Role          llm.Role `json:"role"`
	Content       string   `json:"content"`
	HTML          string   `json:"html,omitempty"`
	ReasoningHTML string   `json:"reasoning_html,omitempty"`
}

// messagesResponse is the JSON response for the messages endpoint.
type messagesResponse struct {
	Document string        `json:"document,omitempty"`
	Chunks   int           `json:"chunks"`
	Messages []messageView `json:"messages"`
}

func (u *UI) handleUpload(w http.ResponseWriter, r *http.Request) {
	s := u.sessionForRequest(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a PDF file is required in field \"file\""})
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only PDF files are supported"})
		return
	}

	n, err := s.LoadDocument(r.Context(), header.Filename, file)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, document.ErrDocumentRead) {
			status = http.StatusUnprocessableEntity
		}
		zlog.Error().Err(err).Str("session", s.ID).Msg("upload failed")
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Document: header.Filename, Chunks: n})
}

func (u *UI) handleMessages(w http.ResponseWriter, r *http.Request) {
	s := u.sessionForRequest(w, r)

	resp := messagesResponse{Messages: []messageView{}}
	if name, chunks, ok := s.Document(); ok {
		resp.Document = name
		resp.Chunks = chunks
	}
	for _, m := range s.Messages() {
		resp.Messages = append(resp.Messages, u.view(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (u *UI) handleReset(w http.ResponseWriter, r *http.Request) {
	u.sessionForRequest(w, r).Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// view renders assistant markdown. User text is left for the page to
// escape.
func (u *UI) view(m chat.Message) messageView {
	v := messageView{Role: m.Role, Content: m.Content}
	if m.Role != llm.RoleAssistant {
		return v
	}
	if html, err := u.md.Render(m.Content); err == nil {
		v.HTML = html
	}
	if html, err := u.md.Render(m.Reasoning); err == nil {
		v.ReasoningHTML = html
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
