package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
)

type configLoader func() (*config.Config, *slog.Logger, error)

func newServeCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser game over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := loadConfig()
			if err != nil {
				return err
			}

			return app.RunApp(cmd.Context(), logger, conf)
		},
	}
}
