package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/nervis/signaling/internal/adapters/http"
	"github.com/nervis/signaling/internal/app"
	"github.com/nervis/signaling/internal/config"
	"github.com/nervis/signaling/internal/transcript"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	orch := &app.Orchestrator{
		Registry: app.NewRegistry(),
		Rooms:    app.NewDirectory(),
	}

	var store *transcript.Store
	if cfg.TranscriptPath != "" {
		store, err = transcript.Open(cfg.TranscriptPath)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.TranscriptPath).Msg("chat transcript disabled")
			store = nil
		} else {
			defer func() {
				if err := store.Close(); err != nil {
					log.Error().Err(err).Msg("closing transcript store")
				}
			}()
			orch.Transcript = store
			log.Info().Str("path", cfg.TranscriptPath).Msg("chat transcript enabled")
		}
	}

	r := router.SetupRouter(ctx, cfg, orch, store)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("signaling server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
