package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petems/recorder/internal/app"
	"github.com/petems/recorder/internal/config"
	"github.com/petems/recorder/pkg/record"
)

func TestRecordFlagsOverrideOnlyChanged(t *testing.T) {
	base := config.Default().Options()
	base.Device = "from-config"

	f := &recordFlags{
		program:    "arecord",
		device:     "hw:1,0",
		sampleRate: 44100,
		silence:    "9.9",
	}
	changed := map[string]bool{"program": true, "rate": true}

	opts := f.apply(base, func(name string) bool { return changed[name] })

	assert.Equal(t, record.ProgramArecord, opts.Program)
	assert.Equal(t, 44100, opts.SampleRate)
	assert.Equal(t, "from-config", opts.Device)
	assert.Equal(t, record.DefaultSilence, opts.Silence)
}

func TestRecordFlagsParsed(t *testing.T) {
	cmd := NewRecordCmd(&Dependencies{Config: config.Default()})
	err := cmd.Flags().Parse([]string{"-p", "arecord", "-d", "hw:1,0", "--threshold-end", "-40d"})
	assert.NoError(t, err)

	f := &recordFlags{}
	f.program, _ = cmd.Flags().GetString("program")
	f.device, _ = cmd.Flags().GetString("device")
	f.thresholdEnd, _ = cmd.Flags().GetString("threshold-end")

	opts := f.apply(config.Default().Options(), cmd.Flags().Changed)
	assert.Equal(t, record.ProgramArecord, opts.Program)
	assert.Equal(t, "hw:1,0", opts.Device)
	assert.Equal(t, "-40d", opts.ThresholdEnd)
	assert.Equal(t, 16000, opts.SampleRate)
}

func TestRecordFlagsZeroThreshold(t *testing.T) {
	cmd := NewRecordCmd(&Dependencies{Config: config.Default()})
	require.NoError(t, cmd.Flags().Parse([]string{"--threshold", "0"}))

	f := &recordFlags{}
	f.threshold, _ = cmd.Flags().GetFloat64("threshold")

	opts := f.apply(config.Default().Options(), cmd.Flags().Changed)
	require.NotNil(t, opts.Threshold)
	assert.Equal(t, 0.0, *opts.Threshold)
}

func TestStartOutputRemovesFileOnFailure(t *testing.T) {
	a := app.New(app.Config{
		Record: func(record.Options) (app.Recorder, error) {
			return nil, errors.New("no backend")
		},
	})
	out := filepath.Join(t.TempDir(), "out.wav")

	_, err := startOutput(a, record.Options{}, &recordFlags{output: out})
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestRunDoctor(t *testing.T) {
	cfg := config.Default()
	cfg.Record.Program = "arecord"

	lookPath := func(name string) (string, error) {
		if name == "arecord" {
			return "/usr/bin/arecord", nil
		}
		return "", errors.New("not found")
	}

	var out bytes.Buffer
	assert.True(t, runDoctor(&out, cfg, lookPath))
	assert.Contains(t, out.String(), "/usr/bin/arecord")
	assert.Contains(t, out.String(), "❌ rec")

	cfg.Record.Program = "rec"
	out.Reset()
	assert.False(t, runDoctor(&out, cfg, lookPath))
	assert.True(t, strings.HasPrefix(out.String(), "* ❌ rec"))
}

func TestRunDoctorUsesConfiguredPath(t *testing.T) {
	cfg := config.Default()
	cfg.Record.Path = "/opt/sox/bin/rec"

	var looked []string
	lookPath := func(name string) (string, error) {
		looked = append(looked, name)
		return name, nil
	}

	var out bytes.Buffer
	assert.True(t, runDoctor(&out, cfg, lookPath))
	assert.Contains(t, looked, "/opt/sox/bin/rec")
}
