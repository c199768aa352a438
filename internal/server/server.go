// Package server exposes the chat pipeline over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"chatbuddy/internal/chat"
	"chatbuddy/internal/export"
	"chatbuddy/internal/llm"
	"chatbuddy/internal/memory"
	"chatbuddy/internal/models"
)

type Server struct {
	router   *chi.Mux
	pipeline *chat.Pipeline
	buffer   *memory.Buffer
	exporter *export.Exporter
}

func New(pipeline *chat.Pipeline, buffer *memory.Buffer, exporter *export.Exporter, allowedOrigin string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &Server{router: r, pipeline: pipeline, buffer: buffer, exporter: exporter}
	s.routes()
	return s
}

// Handler returns the mounted router.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.Get("/", s.handleHome)
	s.router.Post("/chat", s.handleChat)
	s.router.Get("/history", s.handleHistory)
	s.router.Post("/reset", s.handleReset)
	s.router.Get("/export", s.handleExport)
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Chatbot API is running. Use the /chat endpoint."))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ChatResponse{
			Reply: models.ReplyNotJSON,
			Error: models.ErrorInvalidContentType,
		})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		log.Warn().Msg("received empty message")
		writeJSON(w, http.StatusBadRequest, models.ChatResponse{
			Reply: models.ReplyBlankMessage,
			Error: models.ErrorBlankMessage,
		})
		return
	}

	log.Info().Str("message", req.Message).Msg("received message")

	reply, err := s.pipeline.Reply(r.Context(), req.Message)
	if err != nil {
		s.writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

func (s *Server) writeChatError(w http.ResponseWriter, err error) {
	var exhausted *llm.ExhaustedError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, models.ChatResponse{
			Reply: models.ReplyUnavailable,
			Error: models.ErrorNotConfigured,
		})
	case errors.As(err, &exhausted):
		log.Error().Err(err).Int("attempts", exhausted.Attempts).Msg("generation retries exhausted")
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
			Reply: models.ReplyExhausted,
			Error: exhausted.LastErr.Error(),
		})
	default:
		log.Error().Err(err).Msg("reply pipeline failed")
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
			Reply: models.ReplyInternal,
			Error: err.Error(),
		})
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]memory.Turn{"turns": s.buffer.Snapshot()})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.buffer.Reset()
	log.Info().Msg("conversation cleared")
	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: "Conversation cleared."})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	turns := s.buffer.Snapshot()
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s.exporter.Text(turns)))
		return
	}
	writeJSON(w, http.StatusOK, s.exporter.Conversation(turns))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}
