package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chatbuddy/internal/chat"
	"chatbuddy/internal/config"
	"chatbuddy/internal/export"
	"chatbuddy/internal/fallback"
	"chatbuddy/internal/intents"
	"chatbuddy/internal/llm"
	"chatbuddy/internal/memory"
	"chatbuddy/internal/nlu"
	"chatbuddy/internal/server"
	"chatbuddy/internal/transport"
)

func main() {
	// Load .env file if it exists (for development)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	log.Info().Str("service", cfg.ServiceName).Msg("starting chat service")
	log.Info().
		Str("provider", cfg.ModelProvider).
		Str("failure_mode", cfg.FailureMode).
		Int("max_turns", cfg.MaxTurns).
		Msg("configuration loaded")

	buffer := memory.NewBuffer(cfg.SystemPrompt, cfg.MaxTurns)
	resolver := nlu.NewResolver(nlu.NewGazetteerExtractor())
	handlers := intents.NewRegistry(intents.NewJokeClient(cfg.JokeAPIURL, cfg.JokeTimeout))
	rules := fallback.NewResponder()

	gateway, err := llm.NewGateway(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing model gateway")
	}
	if !gateway.Available() {
		log.Warn().Msg("no model backend configured, replies degrade per failure mode")
	}

	pipeline := chat.NewPipeline(resolver, handlers, buffer, gateway, rules,
		llm.DefaultGenerationConfig(cfg.ModelTimeout), chat.ParseMode(cfg.FailureMode))

	srv := server.New(pipeline, buffer, export.NewExporter(), cfg.AllowedOrigin)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.NatsURL != "" {
		natsTransport, err := transport.NewNATSTransport(cfg, pipeline)
		if err != nil {
			log.Fatal().Err(err).Msg("initializing NATS transport")
		}
		defer func() {
			if err := natsTransport.Close(); err != nil {
				log.Error().Err(err).Msg("closing NATS transport")
			}
		}()
		if err := natsTransport.Start(); err != nil {
			log.Fatal().Err(err).Msg("starting NATS transport")
		}
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}

	log.Info().Msg("chat service stopped")
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
