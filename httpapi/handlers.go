package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/Dushyant-2004/Zeno/files"
	"github.com/Dushyant-2004/Zeno/imagegen"
	"github.com/Dushyant-2004/Zeno/relay"
	"github.com/google/uuid"
)

// maxChatBodyBytes bounds the JSON bodies of chat endpoints; the message
// itself is limited separately in characters.
const maxChatBodyBytes = 1 << 20

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	IsVoice   bool   `json:"isVoice"`
}

type chatResponse struct {
	Success           bool             `json:"success"`
	SessionID         string           `json:"sessionId"`
	Message           zeno.ChatMessage `json:"message"`
	ConversationTitle string           `json:"conversationTitle"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadOrCreate resolves the session: an empty id mints a new conversation, an
// unknown id recreates one under that id so clients can pin their own ids.
func (s *Server) loadOrCreate(r *http.Request, sessionID, firstMessage string) (*zeno.Conversation, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else {
		conv, err := s.store.Get(r.Context(), sessionID)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, zeno.ErrConversationNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	conv := &zeno.Conversation{
		SessionID: sessionID,
		Title:     zeno.TitleFromMessage(firstMessage),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(r.Context(), conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// beginTurn validates the incoming message, resolves the conversation,
// persists the user turn and assembles the provider context. A non-nil error
// has already been written to w.
func (s *Server) beginTurn(w http.ResponseWriter, r *http.Request, req chatRequest) (*zeno.Conversation, []zeno.ChatMessage, bool) {
	if err := zeno.ValidateUserInput(req.Message); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	conv, err := s.loadOrCreate(r, req.SessionID, req.Message)
	if err != nil {
		s.logger.Error("failed to load conversation", "sessionId", req.SessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return nil, nil, false
	}

	userMsg := zeno.NewUserMessage(req.Message)
	if err := s.store.Append(r.Context(), conv.SessionID, userMsg); err != nil {
		s.logger.Error("failed to persist user message", "sessionId", conv.SessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save message")
		return nil, nil, false
	}
	conv.Messages = append(conv.Messages, userMsg)

	var docs []zeno.Document
	if s.docs != nil {
		docs, err = s.docs.ReadyDocuments(r.Context(), conv.SessionID)
		if err != nil {
			// Degrade to a docless context rather than failing the turn.
			s.logger.Error("failed to load documents", "sessionId", conv.SessionID, "error", err)
			docs = nil
		}
	}

	return conv, s.assembler.Build(conv, docs), true
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	conv, msgs, ok := s.beginTurn(w, r, req)
	if !ok {
		return
	}

	// Image requests bypass the completion engine entirely.
	if s.images != nil && imagegen.IsImageRequest(req.Message) {
		s.completeImageTurn(w, r, conv, req.Message, "")
		return
	}

	text, err := s.engine.Complete(r.Context(), msgs)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	reply := zeno.NewAssistantMessage(text)
	if err := s.store.Append(r.Context(), conv.SessionID, reply); err != nil {
		s.logger.Error("failed to persist assistant message", "sessionId", conv.SessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save response")
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		Success:           true,
		SessionID:         conv.SessionID,
		Message:           reply,
		ConversationTitle: conv.Title,
	})
}

func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	conv, msgs, ok := s.beginTurn(w, r, req)
	if !ok {
		return
	}

	// Image requests are answered as plain JSON; no SSE headers were written
	// yet, so the response shape simply matches the image endpoint.
	if s.images != nil && imagegen.IsImageRequest(req.Message) {
		s.completeImageTurn(w, r, conv, req.Message, "")
		return
	}

	stream, err := s.engine.Stream(r.Context(), msgs)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer stream.Close()

	sw, err := relay.NewSSEWriter(w)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Terminal events (done or error) are emitted by the relay itself.
	_ = s.relay.Run(r.Context(), stream, conv.SessionID, sw)
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	metas, err := s.store.List(r.Context(), listLimit)
	if err != nil {
		s.logger.Error("failed to list conversations", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Success       bool                    `json:"success"`
		Conversations []zeno.ConversationMeta `json:"conversations"`
	}{true, metas})
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	conv, err := s.store.Get(r.Context(), id)
	if errors.Is(err, zeno.ErrConversationNotFound) {
		// A fresh browser session polls before its first turn; an empty
		// conversation is the friendlier answer.
		conv = &zeno.Conversation{SessionID: id}
	} else if err != nil {
		s.logger.Error("failed to load conversation", "sessionId", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}

	if conv.Messages == nil {
		conv.Messages = []zeno.ChatMessage{}
	}
	s.writeJSON(w, http.StatusOK, struct {
		Success   bool               `json:"success"`
		SessionID string             `json:"sessionId"`
		Title     string             `json:"title"`
		Messages  []zeno.ChatMessage `json:"messages"`
	}{true, conv.SessionID, conv.Title, conv.Messages})
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, zeno.ErrConversationNotFound) {
		s.writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to delete conversation", "sessionId", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete conversation")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type imageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Style     string `json:"style"`
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if s.images == nil {
		s.writeError(w, http.StatusServiceUnavailable, "image generation is not configured")
		return
	}

	var req imageRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := zeno.ValidateUserInput(req.Message); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := s.loadOrCreate(r, req.SessionID, req.Message)
	if err != nil {
		s.logger.Error("failed to load conversation", "sessionId", req.SessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	if err := s.store.Append(r.Context(), conv.SessionID, zeno.NewUserMessage(req.Message)); err != nil {
		s.logger.Error("failed to persist user message", "sessionId", conv.SessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save message")
		return
	}

	s.completeImageTurn(w, r, conv, req.Message, req.Style)
}

// completeImageTurn extracts the drawing prompt from message, generates one
// image and persists the synthesized assistant turn.
func (s *Server) completeImageTurn(w http.ResponseWriter, r *http.Request, conv *zeno.Conversation, message, style string) {
	prompt := imagegen.ExtractPrompt(message)
	result, err := s.images.Generate(r.Context(), prompt, style)
	if err != nil {
		s.logger.Error("image generation failed", "sessionId", conv.SessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	reply := zeno.NewAssistantMessage("Generated an image for: " + result.Prompt + "\n" + result.URL)
	if err := s.store.Append(r.Context(), conv.SessionID, reply); err != nil {
		s.logger.Error("failed to persist assistant message", "sessionId", conv.SessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save response")
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Success   bool             `json:"success"`
		SessionID string           `json:"sessionId"`
		Image     *imagegen.Result `json:"image"`
		Message   zeno.ChatMessage `json:"message"`
	}{true, conv.SessionID, result, reply})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Allow some multipart overhead beyond the file size limit.
	r.Body = http.MaxBytesReader(w, r.Body, files.MaxUploadBytes+maxChatBodyBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	sessionID := r.FormValue("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	doc, err := s.processor.Process(sessionID, header.Filename, data)
	if err != nil {
		var verr *files.ValidationError
		if errors.As(err, &verr) {
			s.writeErrorCode(w, http.StatusBadRequest, verr.Message, string(verr.Code))
			return
		}
		s.logger.Error("failed to process upload", "sessionId", sessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	if err := s.docs.SaveDocument(r.Context(), doc); err != nil {
		s.logger.Error("failed to save document", "sessionId", sessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save document")
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*zeno.Document
	}{true, doc})
}
