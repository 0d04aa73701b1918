package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/petems/recorder/internal/audio"
)

func NewDevicesCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List audio input devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister, err := audio.New()
			if err != nil {
				return err
			}
			defer lister.Close()

			devices, err := lister.ListDevices()
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Fprintln(os.Stdout, "No input devices found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "\tNAME\tHOST\tCHANNELS")
			for _, d := range devices {
				marker := ""
				if d.Default {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", marker, d.Name, d.Host, d.Channels)
			}
			return w.Flush()
		},
	}
}
