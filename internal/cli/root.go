package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/petems/recorder/internal/config"
	"github.com/petems/recorder/internal/logging"
)

type Dependencies struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Version string
	Commit  string
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var verbose bool
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "recorder",
		Short:         "Record microphone audio with rec, sox or arecord",
		Long:          "Runs rec, sox or arecord as a subprocess and writes its WAV output to a file or stdout.\nRecording stops on trailing silence, on Ctrl+C, or from the tray menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				deps.Config.Record.Verbose = true
				logLevel = "debug"
			}
			if !cmd.Flags().Changed("log-level") && !verbose {
				logLevel = deps.Config.LogLevel
			}
			deps.Logger = logging.NewWithLevel(logLevel)
		},
	}

	rootCmd.Version = deps.Version + " (" + deps.Commit + ")"

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	recordCmd := NewRecordCmd(deps)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(NewDevicesCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))
	rootCmd.AddCommand(NewTrayCmd(deps))
	rootCmd.AddCommand(NewConfigCmd(deps))

	// Bare "recorder" records, with the same flags as "recorder record".
	rootCmd.Flags().AddFlagSet(recordCmd.Flags())
	rootCmd.RunE = recordCmd.RunE

	return rootCmd
}
