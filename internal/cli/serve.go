package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/heatsheet/internal/api"
	"github.com/dgallion1/heatsheet/internal/config"
	"github.com/dgallion1/heatsheet/internal/convert"
	"github.com/dgallion1/heatsheet/internal/parser"
	"github.com/dgallion1/heatsheet/internal/pipeline"
	"github.com/spf13/cobra"
)

func newServeCmd(g *globals) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP service",
		Long: `Run the HTTP service. Settings come from the environment
(HEATSHEET_API_KEY, PORT, WORKER_COUNT, MAX_QUEUE_SIZE, MAX_UPLOAD_BYTES,
JOB_TTL, HEATSHEET_RULES, HEATSHEET_CLUB, PDF_FALLBACK_PDFTOTEXT).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			if g.rulesPath != "" {
				cfg.RulesPath = g.rulesPath
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}
	rs, err := (&globals{rulesPath: cfg.RulesPath}).compiledRules()
	if err != nil {
		log.Error("invalid rules", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conv := convert.New(rs, parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext}, log)
	orch := pipeline.NewOrchestrator(cfg, conv, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, log, cfg)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown. Workers stop after the HTTP server has drained so no
	// handler submits to a closed queue.
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
		orch.Stop()
	}()

	log.Info("starting heatsheet", "port", cfg.Port, "workers", cfg.WorkerCount)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		stop()
		<-done
		return err
	}
	<-done
	return nil
}
