// Package httpapi exposes the chat engine over HTTP: blocking and streaming
// chat, conversation management, image generation and file upload.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/Dushyant-2004/Zeno/assemble"
	"github.com/Dushyant-2004/Zeno/engine"
	"github.com/Dushyant-2004/Zeno/files"
	"github.com/Dushyant-2004/Zeno/imagegen"
	"github.com/Dushyant-2004/Zeno/relay"
)

// listLimit caps the conversation listing endpoint.
const listLimit = 50

// ImageGenerator synthesizes images for extracted prompts.
// *imagegen.Client is the production implementation.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, style string) (*imagegen.Result, error)
}

// Server routes HTTP requests into the chat core.
type Server struct {
	engine    *engine.Engine
	relay     *relay.Relay
	assembler *assemble.Assembler
	store     zeno.ConversationStore
	docs      zeno.DocumentStore
	images    ImageGenerator
	processor *files.Processor
	logger    *slog.Logger
	limiter   *ipLimiter
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithImageGenerator enables the image endpoint.
func WithImageGenerator(g ImageGenerator) Option {
	return func(s *Server) { s.images = g }
}

// WithAssembler overrides the default context assembler.
func WithAssembler(a *assemble.Assembler) Option {
	return func(s *Server) { s.assembler = a }
}

// WithProcessor overrides the default upload processor.
func WithProcessor(p *files.Processor) Option {
	return func(s *Server) { s.processor = p }
}

// WithRateLimit enables per-IP request rate limiting.
func WithRateLimit(perSec float64, burst int) Option {
	return func(s *Server) { s.limiter = newIPLimiter(perSec, burst) }
}

// New creates a Server over the engine and stores.
func New(eng *engine.Engine, store zeno.ConversationStore, docs zeno.DocumentStore, opts ...Option) *Server {
	s := &Server{
		engine:    eng,
		assembler: assemble.New(),
		store:     store,
		docs:      docs,
		processor: files.NewProcessor(),
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.relay = relay.New(store, relay.WithLogger(s.logger))
	return s
}

// Handler returns the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/stream", s.handleChatStream)
	mux.HandleFunc("GET /api/conversations", s.handleListConversations)
	mux.HandleFunc("GET /api/conversations/{id}", s.handleGetConversation)
	mux.HandleFunc("DELETE /api/conversations/{id}", s.handleDeleteConversation)
	mux.HandleFunc("POST /api/image", s.handleImage)
	mux.HandleFunc("POST /api/upload", s.handleUpload)

	var h http.Handler = mux
	if s.limiter != nil {
		h = s.rateLimit(h)
	}
	h = s.logRequests(h)
	h = s.recover(h)
	return h
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
