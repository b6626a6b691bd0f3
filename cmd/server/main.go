package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/Pool/internal/adapters/http"
	wsignal "github.com/dkeye/Pool/internal/adapters/signal"
	"github.com/dkeye/Pool/internal/app"
	"github.com/dkeye/Pool/internal/app/orch"
	"github.com/dkeye/Pool/internal/app/table"
	"github.com/dkeye/Pool/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	o := orch.New(orch.Options{
		Timing: app.RoomTiming{
			TickInterval:    cfg.TickInterval(),
			TossRevealDelay: cfg.TossRevealDelay,
			StartDelay:      cfg.StartDelay,
			TurnTimer:       cfg.TurnTimer,
			ChatMaxLen:      cfg.ChatMaxLen,
		},
		MatchTimeout: cfg.MatchmakingTimeout,
		LoopBuffer:   cfg.LoopBuffer,
		Tables:       table.New,
		Policy:       app.RelayPolicy{},
		Log:          log.Logger,
	})
	limiter := wsignal.NewEventRateLimiter(wsignal.RateLimitConfig{
		CosmeticLimit:  cfg.RateLimit.CosmeticLimit,
		CosmeticWindow: cfg.RateLimit.CosmeticWindow,
		StrictLimit:    cfg.RateLimit.StrictLimit,
		StrictWindow:   cfg.RateLimit.StrictWindow,
		SweepInterval:  cfg.RateLimit.SweepInterval,
	}, log.Logger)

	g, gctx := errgroup.WithContext(ctx)

	r := router.SetupRouter(gctx, cfg, o, limiter)
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error { return o.Run(gctx) })
	g.Go(func() error { return limiter.Run(gctx) })
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Pool server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}
