// Package server exposes the engine over HTTP: a JSON API for single
// evaluations and a websocket endpoint to play full games.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/IlikeChooros/go-tictactoe/pkg/minimax"
)

type Server struct {
	engine   *minimax.Engine
	router   chi.Router
	upgrader websocket.Upgrader
	randMu   sync.Mutex
	rand     *rand.Rand
}

// New server, every request searches with a clone of an engine using given limits
func New(limits *minimax.Limits) *Server {
	engine := minimax.NewEngine()
	if limits != nil {
		engine.SetLimits(limits)
	}

	s := &Server{
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		rand: minimax.NewRand(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/best-move", s.handleBestMove)
	r.Post("/api/random-move", s.handleRandomMove)
	r.Post("/api/evaluate", s.handleEvaluate)
	r.Get("/ws/play", s.handlePlay)

	s.router = r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Engine for a single request, cancelled together with the request
func (s *Server) requestEngine(ctx context.Context) *minimax.Engine {
	engine := s.engine.Clone()
	engine.SetContext(ctx)
	return engine
}

func (s *Server) intn(n int) int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.rand.Intn(n)
}

// Serve until the context is done, then shut down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	log.Printf("[server] listening on %s", addr)
	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("[server] shutdown signal received: %v", ctx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[server] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[server] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[server] forced close failed: %v", closeErr)
		}
	}
	return runErr
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
