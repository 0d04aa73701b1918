package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantName string
		wantArgs []string
	}{
		{
			name:     "rec defaults",
			opts:     Options{},
			wantName: "rec",
			wantArgs: []string{
				"-q", "-r", "16000", "-c", "1", "-e", "signed-integer", "-b", "16", "-t", "wav", "-",
				"silence", "1", "0.1", "0.5%", "1", "1.0", "0.5%",
			},
		},
		{
			name:     "sox reads the default device",
			opts:     Options{Program: ProgramSox, SampleRate: 44100},
			wantName: "sox",
			wantArgs: []string{
				"-q", "-d", "-r", "44100", "-c", "1", "-e", "signed-integer", "-b", "16", "-t", "wav", "-",
				"silence", "1", "0.1", "0.5%", "1", "1.0", "0.5%",
			},
		},
		{
			name:     "independent thresholds",
			opts:     Options{Threshold: Percent(3), ThresholdStart: "-45d", ThresholdEnd: "2.5%", Silence: "2.0"},
			wantName: "rec",
			wantArgs: []string{
				"-q", "-r", "16000", "-c", "1", "-e", "signed-integer", "-b", "16", "-t", "wav", "-",
				"silence", "1", "0.1", "-45d", "1", "2.0", "2.5%",
			},
		},
		{
			name:     "only start threshold overridden",
			opts:     Options{Threshold: Percent(1.25), ThresholdStart: "4%"},
			wantName: "rec",
			wantArgs: []string{
				"-q", "-r", "16000", "-c", "1", "-e", "signed-integer", "-b", "16", "-t", "wav", "-",
				"silence", "1", "0.1", "4%", "1", "1.0", "1.25%",
			},
		},
		{
			name:     "explicit zero threshold is kept",
			opts:     Options{Threshold: Percent(0)},
			wantName: "rec",
			wantArgs: []string{
				"-q", "-r", "16000", "-c", "1", "-e", "signed-integer", "-b", "16", "-t", "wav", "-",
				"silence", "1", "0.1", "0%", "1", "1.0", "0%",
			},
		},
		{
			name:     "arecord without device",
			opts:     Options{Program: ProgramArecord, SampleRate: 8000},
			wantName: "arecord",
			wantArgs: []string{"-q", "-r", "8000", "-c", "1", "-t", "wav", "-f", "S16_LE", "-"},
		},
		{
			name:     "arecord with device",
			opts:     Options{Program: ProgramArecord, Device: "hw:1,0"},
			wantName: "arecord",
			wantArgs: []string{"-D", "hw:1,0", "-q", "-r", "16000", "-c", "1", "-t", "wav", "-f", "S16_LE", "-"},
		},
		{
			name:     "unknown program falls back to rec",
			opts:     Options{Program: "parec"},
			wantName: "rec",
			wantArgs: []string{
				"-q", "-r", "16000", "-c", "1", "-e", "signed-integer", "-b", "16", "-t", "wav", "-",
				"silence", "1", "0.1", "0.5%", "1", "1.0", "0.5%",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args := buildCommand(tt.opts.withDefaults())
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestNewResolvesCommand(t *testing.T) {
	for _, p := range []Program{ProgramRec, ProgramSox, ProgramArecord} {
		t.Run(string(p), func(t *testing.T) {
			r, err := New(Options{Program: p, SampleRate: 22050})
			require.NoError(t, err)

			name, args := r.Command()
			assert.Equal(t, string(p), name)
			require.NotEmpty(t, args)
			assert.Contains(t, args, "22050")
			assert.Contains(t, args, "-q")
			assert.Contains(t, args, "wav")
			assert.Contains(t, args, "-")
		})
	}
}

func TestNewDeviceEnvironment(t *testing.T) {
	r, err := New(Options{Program: ProgramArecord, Device: "hw:1,0"})
	require.NoError(t, err)

	_, args := r.Command()
	assert.Equal(t, []string{"-D", "hw:1,0"}, args[:2])
	assert.Contains(t, r.Env(), "AUDIODEV=hw:1,0")

	r, err = New(Options{Device: "hw:2,0"})
	require.NoError(t, err)
	_, args = r.Command()
	assert.NotContains(t, args, "-D")
	assert.Contains(t, r.Env(), "AUDIODEV=hw:2,0")
}

func TestNewInheritsEnvironmentWithoutDevice(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	assert.Nil(t, r.Env())
}

func TestNewPathOverride(t *testing.T) {
	r, err := New(Options{Program: ProgramArecord, Path: "/opt/alsa/bin/arecord"})
	require.NoError(t, err)

	name, args := r.Command()
	assert.Equal(t, "/opt/alsa/bin/arecord", name)
	assert.Equal(t, "-q", args[0])
}

func TestNewRejectsNegativeSampleRate(t *testing.T) {
	_, err := New(Options{SampleRate: -1})
	assert.ErrorIs(t, err, ErrInvalidSampleRate)
}

func TestWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultSampleRate, o.SampleRate)
	require.NotNil(t, o.Threshold)
	assert.Equal(t, DefaultThreshold, *o.Threshold)
	assert.Equal(t, DefaultSilence, o.Silence)
	assert.Equal(t, ProgramRec, o.Program)

	o = Options{SampleRate: 48000, Threshold: Percent(2), Silence: "3.0", Program: ProgramArecord}.withDefaults()
	assert.Equal(t, 48000, o.SampleRate)
	assert.Equal(t, 2.0, *o.Threshold)
	assert.Equal(t, "3.0", o.Silence)
	assert.Equal(t, ProgramArecord, o.Program)

	o = Options{Threshold: Percent(0)}.withDefaults()
	assert.Equal(t, 0.0, *o.Threshold)
}
