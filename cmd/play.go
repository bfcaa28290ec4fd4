package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/app"
	"github.com/abhisek/aptiz/internal/client"
	"github.com/abhisek/aptiz/internal/media"
	"github.com/abhisek/aptiz/internal/screens/section"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the practice app",
	RunE:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("server", "", "Generation server URL (overrides APTIZ_SERVER)")
	cmd.Flags().Bool("no-audio", false, "Disable microphone capture and speech playback")
}

// runPlay builds the client and media devices, then launches the TUI.
func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	baseURL := client.BaseURLFromEnv()
	if u, _ := cmd.Flags().GetString("server"); u != "" {
		baseURL = u
	}
	c := client.New(baseURL, client.WithLogger(logger))

	deps := section.Deps{Source: c, Logger: logger}
	if noAudio, _ := cmd.Flags().GetBool("no-audio"); !noAudio {
		rec := media.NewFFmpegRecorder(media.DefaultRecorderConfig(), logger)
		defer rec.Close()
		deps.Recorder = rec

		if sp, err := media.NewSpeaker(logger); err != nil {
			logger.Warn("speech playback disabled", zap.Error(err))
		} else {
			deps.Speaker = sp
		}
	}

	logger.Info("starting app", zap.String("server", baseURL), zap.String("version", version))
	return app.Run(app.Options{
		Section: deps,
		Notice:  serverNotice(cmd.Context(), c, baseURL, logger),
	})
}

// serverNotice checks the generation server and describes any problem for
// the dashboard. An empty string means the server looks fine.
func serverNotice(ctx context.Context, c *client.Client, baseURL string, logger *zap.Logger) string {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	serverVersion, ok, err := c.CheckServer(ctx, version)
	switch {
	case err != nil:
		logger.Warn("generation server check failed", zap.String("server", baseURL), zap.Error(err))
		return fmt.Sprintf("Generation server at %s is not reachable. Writing and Speaking still work.", baseURL)
	case !ok:
		logger.Warn("generation server version mismatch",
			zap.String("server_version", serverVersion), zap.String("client_version", version))
		return fmt.Sprintf("Server version %s may be incompatible with this app (%s).", serverVersion, version)
	}
	return ""
}
