package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/voltaire-systems/govproxy/internal/config"
	"github.com/voltaire-systems/govproxy/internal/handlers"
	"github.com/voltaire-systems/govproxy/internal/server"
	"github.com/voltaire-systems/govproxy/internal/upstream"
	"github.com/voltaire-systems/govproxy/pkg/logging"
	"github.com/voltaire-systems/govproxy/pkg/middleware"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)
	logging.SetDefault(logger)

	logger.Info("starting govproxy",
		logging.Service("govproxy"),
		"port", cfg.Server.Port,
		"koios_base_url", cfg.Upstreams.KoiosBaseURL,
		"gemini_model", cfg.Gemini.Model,
		"gemini_key_configured", cfg.Gemini.APIKey != "",
	)

	fetchClient := upstream.NewClient(cfg.Upstreams.Timeout(), logger)

	bootstrapHandler := handlers.NewBootstrapHandler(handlers.BootstrapSources{
		SPOCSVURL:       cfg.Upstreams.SPOCSVURL,
		DRepJSONURL:     cfg.Upstreams.DRepJSONURL,
		ProposalListURL: cfg.Upstreams.KoiosBaseURL + "/proposal_list",
		PageLimit:       cfg.Upstreams.PageLimit,
	}, fetchClient, logger)

	geminiHandler := handlers.NewGeminiHandler(
		cfg.Gemini.APIKey,
		cfg.Gemini.BaseURL,
		cfg.Gemini.Model,
		cfg.Gemini.Timeout(),
		logger,
	)

	mux := server.NewRouter(server.RouterConfig{
		Bootstrap:       bootstrapHandler,
		Gemini:          geminiHandler,
		Treasury:        handlers.NewTreasuryHandler(cfg.Upstreams.KoiosBaseURL, fetchClient, logger),
		Committee:       handlers.NewCommitteeHandler(cfg.Upstreams.KoiosBaseURL, fetchClient, logger),
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		PreflightStatus: cfg.CORS.PreflightStatus,
	})

	handler := middleware.RequestID(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}

	// Start server in goroutine
	go func() {
		logger.Info("govproxy listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("govproxy stopped")
}
