// Package chatui serves the browser interface for chatting with an
// uploaded PDF.
package chatui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vikrambhat2/AgenticRAG/internal/chat"
	"github.com/vikrambhat2/AgenticRAG/internal/markdown"
)

// SessionCookie carries the visitor's chat session ID.
const SessionCookie = "agenticrag_session"

// maxUploadBytes caps the size of an uploaded PDF.
const maxUploadBytes = 32 << 20

// UI provides the document chat page, its JSON API and the chat websocket.
type UI struct {
	sessions *chat.Manager
	md       *markdown.Renderer
}

// New creates a UI backed by the given session registry.
func New(sessions *chat.Manager) *UI {
	return &UI{
		sessions: sessions,
		md:       markdown.New(),
	}
}

// RegisterRoutes mounts all chat UI routes onto the given router.
func (u *UI) RegisterRoutes(r chi.Router) {
	r.Get("/", u.ServeIndex)
	r.Post("/api/upload", u.handleUpload)
	r.Get("/api/messages", u.handleMessages)
	r.Post("/api/reset", u.handleReset)
	r.Get("/ws/chat", u.handleWebSocket)
}

// session resolves the caller's session, creating one if needed. The
// returned cookie is non-nil when the client must store a new ID.
func (u *UI) session(r *http.Request) (*chat.Session, *http.Cookie) {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	s := u.sessions.Get(id)
	if s.ID == id {
		return s, nil
	}
	return s, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (u *UI) sessionForRequest(w http.ResponseWriter, r *http.Request) *chat.Session {
	s, cookie := u.session(r)
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	return s
}
