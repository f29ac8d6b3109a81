package chatui

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vikrambhat2/AgenticRAG/internal/chat"
	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/llm/llmtest"
)

// textIngestor treats uploads as plain text, or fails with err.
type textIngestor struct {
	err error
}

func (t *textIngestor) Load(_ context.Context, _ string, r io.Reader) ([]document.Chunk, error) {
	if t.err != nil {
		return nil, t.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c, _ := document.NewChunker(64, 16)
	return c.Split([]document.Page{{Number: 1, Text: string(b)}}), nil
}

type mockEmbedder struct{}

func (mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, 16)
		for j, ch := range text {
			vec[(int(ch)+j)%16]++
		}
		var norm float64
		for _, v := range vec {
			norm += float64(v * v)
		}
		for k := range vec {
			vec[k] = float32(float64(vec[k]) / math.Sqrt(norm))
		}
		out[i] = vec
	}
	return out, nil
}

func (mockEmbedder) Dimensions() int { return 16 }
func (mockEmbedder) Name() string    { return "mock" }

func setupTest(t *testing.T, answer string, ingestErr error) (*httptest.Server, *llmtest.MockProvider) {
	t.Helper()
	srv, mock, _ := setupTestManager(t, answer, ingestErr)
	return srv, mock
}

func setupTestManager(t *testing.T, answer string, ingestErr error) (*httptest.Server, *llmtest.MockProvider, *chat.Manager) {
	t.Helper()
	mock := llmtest.NewMockProvider(answer)
	m := chat.NewManager(chat.Deps{
		Loader:   &textIngestor{err: ingestErr},
		Embedder: mockEmbedder{},
		Provider: mock,
		TopK:     5,
	}, time.Hour)

	r := chi.NewRouter()
	New(m).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, mock, m
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func upload(t *testing.T, client *http.Client, url, filename, content string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()

	resp, err := client.Post(url+"/api/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return resp
}

func dial(t *testing.T, client *http.Client, srvURL string) *websocket.Conn {
	t.Helper()
	dialer := websocket.Dialer{Jar: client.Jar}
	wsURL := "ws" + strings.TrimPrefix(srvURL, "http") + "/ws/chat"
	conn, resp, err := dialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServeIndex(t *testing.T) {
	srv, _ := setupTest(t, "", nil)
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected text/html content type, got %q", ct)
	}
	if !strings.Contains(string(body), "Document Query Assistant") {
		t.Error("expected page title in HTML")
	}
	if !strings.Contains(resp.Header.Get("Set-Cookie"), SessionCookie) {
		t.Error("expected a session cookie on first visit")
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	srv, _ := setupTest(t, "", nil)
	resp := upload(t, newClient(t), srv.URL, "notes.txt", "hello")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUploadMissingFile(t *testing.T) {
	srv, _ := setupTest(t, "", nil)
	resp, err := newClient(t).Post(srv.URL+"/api/upload", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUploadUnreadablePDF(t *testing.T) {
	srv, _ := setupTest(t, "", document.ErrDocumentRead)
	resp := upload(t, newClient(t), srv.URL, "broken.pdf", "garbage")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] == "" {
		t.Error("expected error message")
	}
}

func TestChatFlow(t *testing.T) {
	srv, mock := setupTest(t, "<think>Page one names her.</think>The candidate is **Jane Doe**.", nil)
	client := newClient(t)

	resp := upload(t, client, srv.URL, "resume.PDF", "Jane Doe, senior Go developer with Kubernetes experience.")
	var up uploadResponse
	json.NewDecoder(resp.Body).Decode(&up)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d", resp.StatusCode)
	}
	if up.Document != "resume.PDF" || up.Chunks == 0 {
		t.Fatalf("unexpected upload response: %+v", up)
	}

	conn := dial(t, client, srv.URL)
	if err := conn.WriteJSON(chatRequest{Type: "message", Content: "Who is the candidate?"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var cr chatResponse
	if err := conn.ReadJSON(&cr); err != nil {
		t.Fatalf("read: %v", err)
	}
	if cr.Type != "response" {
		t.Fatalf("expected response, got %+v", cr)
	}
	if !strings.Contains(cr.Content, "<strong>Jane Doe</strong>") {
		t.Errorf("expected rendered answer, got %q", cr.Content)
	}
	if strings.Contains(cr.Content, "Page one") {
		t.Errorf("reasoning leaked into answer: %q", cr.Content)
	}
	if !strings.Contains(cr.Reasoning, "Page one names her.") {
		t.Errorf("expected reasoning, got %q", cr.Reasoning)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 model call, got %d", mock.CallCount())
	}

	mresp, err := client.Get(srv.URL + "/api/messages")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	defer mresp.Body.Close()
	var msgs messagesResponse
	json.NewDecoder(mresp.Body).Decode(&msgs)
	if len(msgs.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs.Messages))
	}
	if msgs.Messages[1].Content != "The candidate is **Jane Doe**." {
		t.Errorf("assistant content: %q", msgs.Messages[1].Content)
	}
	if msgs.Document != "resume.PDF" {
		t.Errorf("document: %q", msgs.Document)
	}
}

func TestWebSocketWithoutDocument(t *testing.T) {
	srv, mock := setupTest(t, "unused", nil)
	conn := dial(t, newClient(t), srv.URL)

	conn.WriteJSON(chatRequest{Type: "message", Content: "hello"})
	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || !strings.Contains(resp.Content, "Upload a PDF") {
		t.Errorf("expected upload hint, got %+v", resp)
	}
	if mock.CallCount() != 0 {
		t.Error("model should not be called")
	}
}

func TestWebSocketEmptyContent(t *testing.T) {
	srv, _ := setupTest(t, "", nil)
	conn := dial(t, newClient(t), srv.URL)

	conn.WriteJSON(chatRequest{Type: "message", Content: "  "})
	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || !strings.Contains(resp.Content, "content is required") {
		t.Errorf("expected content error, got %+v", resp)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	srv, _ := setupTest(t, "", nil)
	conn := dial(t, newClient(t), srv.URL)

	conn.WriteJSON(chatRequest{Type: "unknown", Content: "hello"})
	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || !strings.Contains(resp.Content, "unknown message type") {
		t.Errorf("expected unknown type error, got %+v", resp)
	}
}

func TestWebSocketInvalidJSON(t *testing.T) {
	srv, _ := setupTest(t, "", nil)
	conn := dial(t, newClient(t), srv.URL)

	conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || resp.Content != "invalid message format" {
		t.Errorf("expected format error, got %+v", resp)
	}
}

func TestResetClearsSession(t *testing.T) {
	srv, _ := setupTest(t, "ok", nil)
	client := newClient(t)

	resp := upload(t, client, srv.URL, "a.pdf", "some content")
	resp.Body.Close()

	rresp, err := client.Post(srv.URL+"/api/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	rresp.Body.Close()

	mresp, err := client.Get(srv.URL + "/api/messages")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	defer mresp.Body.Close()
	var msgs messagesResponse
	json.NewDecoder(mresp.Body).Decode(&msgs)
	if msgs.Document != "" || len(msgs.Messages) != 0 {
		t.Errorf("expected empty session after reset, got %+v", msgs)
	}
}

func TestSessionsDoNotLeakBetweenClients(t *testing.T) {
	srv, _ := setupTest(t, "ok", nil)

	alice := newClient(t)
	resp := upload(t, alice, srv.URL, "a.pdf", "alice's private document")
	resp.Body.Close()

	bob := newClient(t)
	mresp, err := bob.Get(srv.URL + "/api/messages")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	defer mresp.Body.Close()
	var msgs messagesResponse
	json.NewDecoder(mresp.Body).Decode(&msgs)
	if msgs.Document != "" {
		t.Errorf("bob sees alice's document %q", msgs.Document)
	}
}

func sessionID(t *testing.T, client *http.Client, srvURL string) string {
	t.Helper()
	u, err := url.Parse(srvURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == SessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie")
	return ""
}

func ask(t *testing.T, conn *websocket.Conn, question string) chatResponse {
	t.Helper()
	if err := conn.WriteJSON(chatRequest{Type: "message", Content: question}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp
}

func TestWebSocketFollowsRecreatedSession(t *testing.T) {
	srv, mock, m := setupTestManager(t, "ok", nil)
	client := newClient(t)

	resp := upload(t, client, srv.URL, "old.pdf", "old document about penguins")
	resp.Body.Close()
	conn := dial(t, client, srv.URL)
	if r := ask(t, conn, "what animal?"); r.Type != "response" {
		t.Fatalf("expected response, got %+v", r)
	}

	// The session expires while the websocket stays open; the next upload
	// recreates it under the same cookie ID.
	id := sessionID(t, client, srv.URL)
	m.Delete(id)
	resp = upload(t, client, srv.URL, "new.pdf", "new document about giraffes")
	resp.Body.Close()

	if r := ask(t, conn, "what animal?"); r.Type != "response" {
		t.Fatalf("expected response, got %+v", r)
	}
	system := mock.LastRequest().Messages[0].Content
	if !strings.Contains(system, "giraffes") {
		t.Errorf("answer should use the new document, context:\n%s", system)
	}
	if strings.Contains(system, "penguins") {
		t.Errorf("old document leaked into context:\n%s", system)
	}

	mresp, err := client.Get(srv.URL + "/api/messages")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	defer mresp.Body.Close()
	var msgs messagesResponse
	json.NewDecoder(mresp.Body).Decode(&msgs)
	if msgs.Document != "new.pdf" || len(msgs.Messages) != 2 {
		t.Errorf("transcript should belong to the recreated session, got %+v", msgs)
	}
}

func TestIndexDoesNotInjectServerStrings(t *testing.T) {
	// Document names come from the uploader; the page must set them as text.
	concat := regexp.MustCompile(`innerHTML\s*=.*\+\s*(data|file)\.`)
	for i, line := range strings.Split(string(indexHTML), "\n") {
		if concat.MatchString(line) {
			t.Errorf("line %d builds markup from untrusted text: %s", i+1, strings.TrimSpace(line))
		}
	}
}
