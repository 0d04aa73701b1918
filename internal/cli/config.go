package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petems/recorder/internal/config"
)

func NewConfigCmd(deps *Dependencies) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if save {
				if err := deps.Config.Save(); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
				fmt.Fprintf(os.Stderr, "✅ Config saved: %s\n", config.Path())
			}

			data, err := deps.Config.Encode()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the resolved configuration to the config file")
	return cmd
}
