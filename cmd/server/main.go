package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"clinical-note-bridge/internal/config"
	"clinical-note-bridge/internal/mcptool"
	"clinical-note-bridge/internal/note"
	"clinical-note-bridge/internal/platform/middleware"
	"clinical-note-bridge/internal/platform/ollama"
	"clinical-note-bridge/internal/report"
)

const version = "1.0.0"

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "clinical-note-bridge").
		Logger()
	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	// 2. Clients
	ollamaClient := ollama.NewClient(
		cfg.BaseURL(),
		cfg.OllamaModel,
		cfg.Timeout(),
		cfg.Temperature,
		cfg.TopP,
	)

	// 3. Services
	noteSvc := note.NewService(ollamaClient, logger)
	reportSvc := report.NewService()
	noteHandler := note.NewHandler(noteSvc, reportSvc, cfg.BaseURL(), cfg.OllamaModel)

	mcpServer := mcptool.NewServer(noteSvc, version)

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(logger))

	// CORS for the management frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/health", noteHandler.Health)
	r.Route("/api", func(r chi.Router) {
		note.RegisterRoutes(r, noteHandler)
	})
	r.Mount("/mcp", mcptool.NewHTTPHandler(mcpServer))

	logger.Info().
		Str("port", cfg.Port).
		Str("ollama_url", cfg.BaseURL()).
		Str("model", cfg.OllamaModel).
		Msg("server starting")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
