package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/petems/recorder/internal/app"
	"github.com/petems/recorder/internal/permissions"
	"github.com/petems/recorder/pkg/record"
)

type recordFlags struct {
	output         string
	dir            string
	program        string
	path           string
	device         string
	sampleRate     int
	threshold      float64
	thresholdStart string
	thresholdEnd   string
	silence        string
}

// apply overrides opts with every flag the user set explicitly.
func (f *recordFlags) apply(opts record.Options, changed func(string) bool) record.Options {
	if changed("program") {
		opts.Program = record.Program(f.program)
	}
	if changed("path") {
		opts.Path = f.path
	}
	if changed("device") {
		opts.Device = f.device
	}
	if changed("rate") {
		opts.SampleRate = f.sampleRate
	}
	if changed("threshold") {
		opts.Threshold = record.Percent(f.threshold)
	}
	if changed("threshold-start") {
		opts.ThresholdStart = f.thresholdStart
	}
	if changed("threshold-end") {
		opts.ThresholdEnd = f.thresholdEnd
	}
	if changed("silence") {
		opts.Silence = f.silence
	}
	return opts
}

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	f := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record until silence or Ctrl+C",
		Long:  "Record from the microphone until the backend detects trailing silence or the process is interrupted.\nWrites WAV to stdout unless --output or --dir is given. Send SIGUSR1 to pause or resume.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := f.apply(deps.Config.Options(), cmd.Flags().Changed)
			opts.Logger = &deps.Logger
			return runRecord(deps, opts, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", `Output file ("-" or empty for stdout)`)
	flags.StringVar(&f.dir, "dir", "", "Write a timestamped file into this directory")
	flags.StringVarP(&f.program, "program", "p", string(record.DefaultProgram), "Recording program: rec, sox or arecord")
	flags.StringVar(&f.path, "path", "", "Path to the recording program binary")
	flags.StringVarP(&f.device, "device", "d", "", `Capture device, e.g. "hw:1,0"`)
	flags.IntVarP(&f.sampleRate, "rate", "r", record.DefaultSampleRate, "Sample rate in Hz")
	flags.Float64Var(&f.threshold, "threshold", record.DefaultThreshold, "Silence threshold in percent")
	flags.StringVar(&f.thresholdStart, "threshold-start", "", `Leading silence level, e.g. "2%" or "-45d"`)
	flags.StringVar(&f.thresholdEnd, "threshold-end", "", "Trailing silence level")
	flags.StringVar(&f.silence, "silence", record.DefaultSilence, "Seconds of trailing silence before stopping")

	return cmd
}

func runRecord(deps *Dependencies, opts record.Options, f *recordFlags) error {
	log := deps.Logger

	if err := permissions.EnsureMicrophone(); err != nil {
		return err
	}

	a := app.New(app.Config{Logger: log})

	closeOutput, err := startOutput(a, opts, f)
	if err != nil {
		return err
	}
	defer closeOutput()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stopCh)

	pauseCh := make(chan os.Signal, 1)
	if sigs := pauseSignals(); len(sigs) > 0 {
		signal.Notify(pauseCh, sigs...)
		defer signal.Stop(pauseCh)
	}

	for {
		select {
		case <-stopCh:
			if err := a.Stop(); err != nil {
				log.Debug().Err(err).Msg("Stop after exit")
			}
		case <-pauseCh:
			paused, err := a.TogglePause()
			if err != nil {
				log.Error().Err(err).Msg("Failed to toggle pause")
				continue
			}
			if paused {
				fmt.Fprintln(os.Stderr, "⏸️  Paused")
			} else {
				fmt.Fprintln(os.Stderr, "🔴 Resumed")
			}
		case <-a.Done():
			n, err := a.Wait()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "⏹️  Recording stopped (%d bytes)\n", n)
			return nil
		}
	}
}

// startOutput starts a recording into the destination chosen by f and
// returns a func that closes it once the recording is over.
func startOutput(a *app.App, opts record.Options, f *recordFlags) (func(), error) {
	switch {
	case f.dir != "":
		path, err := a.StartFile(opts, f.dir)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "🎤 Recording to %s\n", path)
		return func() {}, nil
	case f.output != "" && f.output != "-":
		file, err := os.Create(f.output)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		if err := a.Start(opts, file); err != nil {
			file.Close()
			os.Remove(f.output)
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "🎤 Recording to %s\n", f.output)
		return func() { file.Close() }, nil
	default:
		if err := a.Start(opts, os.Stdout); err != nil {
			return nil, err
		}
		return func() {}, nil
	}
}
