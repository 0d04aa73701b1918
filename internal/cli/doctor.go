package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/petems/recorder/internal/config"
	"github.com/petems/recorder/pkg/record"
)

var installHints = map[record.Program]string{
	record.ProgramRec:     "install sox (brew install sox / apt-get install sox)",
	record.ProgramSox:     "install sox (brew install sox / apt-get install sox)",
	record.ProgramArecord: "install alsa-utils (apt-get install alsa-utils)",
}

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that a recording program is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runDoctor(os.Stdout, deps.Config, exec.LookPath) {
				return fmt.Errorf("configured program %q is not available", deps.Config.Record.Program)
			}
			return nil
		},
	}
}

// runDoctor prints one line per backend and reports whether the configured
// one can be executed.
func runDoctor(w io.Writer, cfg *config.Config, lookPath func(string) (string, error)) bool {
	configured := record.Program(cfg.Record.Program)
	if _, ok := installHints[configured]; !ok {
		configured = record.DefaultProgram
	}

	ok := true
	for _, p := range []record.Program{record.ProgramRec, record.ProgramSox, record.ProgramArecord} {
		name := string(p)
		if p == configured && cfg.Record.Path != "" {
			name = cfg.Record.Path
		}

		marker := " "
		if p == configured {
			marker = "*"
		}

		if path, err := lookPath(name); err != nil {
			fmt.Fprintf(w, "%s ❌ %-8s not found: %s\n", marker, p, installHints[p])
			if p == configured {
				ok = false
			}
		} else {
			fmt.Fprintf(w, "%s ✅ %-8s %s\n", marker, p, path)
		}
	}

	fmt.Fprintf(w, "\nRecordings directory: %s\n", cfg.RecordingsDir)
	fmt.Fprintf(w, "Config file: %s\n", config.Path())
	return ok
}
