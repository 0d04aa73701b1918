package cli

import (
	"github.com/spf13/cobra"

	"github.com/petems/recorder/internal/app"
	"github.com/petems/recorder/internal/permissions"
	"github.com/petems/recorder/internal/tray"
)

func NewTrayCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Run as a system tray app",
		Long:  "Show a tray icon with Start/Stop, Pause/Resume and Copy Recording Path.\nRecordings are written to the configured recordings directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := permissions.EnsureMicrophone(); err != nil {
				return err
			}

			// Create tray UI first (we'll pass it to app)
			ui := tray.New(nil, deps.Config, deps.Logger, deps.Version, deps.Commit)

			application := app.New(app.Config{
				Logger:        deps.Logger,
				StatusUpdater: ui,
			})
			ui.SetApp(application)

			deps.Logger.Info().Str("dir", deps.Config.RecordingsDir).Msg("Tray starting")
			return ui.Run(cmd.Context())
		},
	}
}
