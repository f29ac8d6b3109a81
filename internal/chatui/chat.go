package chatui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"

	"github.com/vikrambhat2/AgenticRAG/internal/chat"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Type    string `json:"type"` // "message"
	Content string `json:"content"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type      string `json:"type"` // "response" or "error"
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
}

func (u *UI) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s, cookie := u.session(r)
	header := http.Header{}
	if cookie != nil {
		header.Add("Set-Cookie", cookie.String())
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		zlog.Warn().Err(err).Msg("chatui: websocket upgrade")
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zlog.Warn().Err(err).Msg("chatui: websocket read")
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			u.sendError(conn, "invalid message format")
			continue
		}

		if strings.TrimSpace(req.Content) == "" {
			u.sendError(conn, "content is required")
			continue
		}

		switch req.Type {
		case "message":
			// Re-resolve so the connection follows the registry if the
			// session expired and an upload recreated it under the same ID.
			s = u.sessions.Get(s.ID)
			u.handleChatMessage(conn, r, s, req)
		default:
			u.sendError(conn, "unknown message type: "+req.Type)
		}
	}
}

func (u *UI) handleChatMessage(conn *websocket.Conn, r *http.Request, s *chat.Session, req chatRequest) {
	answer, err := s.Ask(r.Context(), req.Content)
	if errors.Is(err, chat.ErrNoDocument) {
		u.sendError(conn, "Upload a PDF before asking questions.")
		return
	}
	if err != nil {
		zlog.Error().Err(err).Str("session", s.ID).Msg("chatui: answering failed")
		u.sendError(conn, "answering failed: "+err.Error())
		return
	}

	v := u.view(answer)
	u.sendResponse(conn, chatResponse{
		Type:      "response",
		Content:   v.HTML,
		Reasoning: v.ReasoningHTML,
	})
}

func (u *UI) sendResponse(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		zlog.Warn().Err(err).Msg("chatui: websocket write")
	}
}

func (u *UI) sendError(conn *websocket.Conn, message string) {
	resp := chatResponse{
		Type:    "error",
		Content: message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		zlog.Warn().Err(err).Msg("chatui: websocket write error")
	}
}
