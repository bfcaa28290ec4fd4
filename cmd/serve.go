package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/contentgen"
	"github.com/abhisek/aptiz/internal/llm"
	"github.com/abhisek/aptiz/internal/server"
	"github.com/abhisek/aptiz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the content generation server",
	Long: `Run the HTTP server that generates grammar, reading and listening content.

The model credential is read from API_KEY (or APTIZ_<PROVIDER>_API_KEY). The
server refuses to start without it.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides APTIZ_ADDR, default :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Generation telemetry is optional; the server still runs without it.
	var events store.EventRepo
	if st, err := openStore(cmd); err != nil {
		logger.Warn("event log unavailable", zap.Error(err))
	} else {
		defer st.Close()
		events = st.EventRepo()
	}

	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, events, logger)
	if err != nil {
		logger.Error("generation provider not configured", zap.Error(err))
		return fmt.Errorf("generation provider: %w", err)
	}
	logger.Info("generation provider ready",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", llmCfg.ModelName()))

	cfg := server.ConfigFromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	cfg.Version = version

	svc := contentgen.New(provider, contentgen.ConfigFor(llmCfg), logger)
	return server.New(svc, cfg, logger).Run(ctx)
}
