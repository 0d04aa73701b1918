package record

import (
	"github.com/rs/zerolog"
)

// Program selects the external binary that does the capture.
type Program string

const (
	ProgramRec     Program = "rec"
	ProgramSox     Program = "sox"
	ProgramArecord Program = "arecord"
)

// Fixed stream format. The backends are always asked for signed 16-bit mono.
const (
	Channels = 1
	BitDepth = 16
)

// Defaults used when an Options field is left at its zero value.
const (
	DefaultSampleRate = 16000
	DefaultThreshold  = 0.5
	DefaultSilence    = "1.0"
	DefaultProgram    = ProgramRec
)

// deviceEnv is read by sox/rec to pick the capture device.
const deviceEnv = "AUDIODEV"

// Options configures one recording session.
type Options struct {
	// SampleRate in Hz. Zero means DefaultSampleRate.
	SampleRate int

	// Compress is accepted for compatibility and currently has no effect.
	Compress bool

	// Threshold is the silence level in percent used for both trimming ends
	// unless ThresholdStart or ThresholdEnd is set. Nil means DefaultThreshold;
	// an explicit zero is kept.
	Threshold *float64

	// ThresholdStart and ThresholdEnd are passed to sox verbatim, so any form
	// sox accepts works ("2%", "-45d", "0.02").
	ThresholdStart string
	ThresholdEnd   string

	// Silence is how long the input must stay below ThresholdEnd before the
	// backend stops on its own.
	Silence string

	Verbose bool

	// Program is the backend. Unknown values fall back to ProgramRec.
	Program Program

	// Device is the capture device identifier, e.g. "hw:1,0".
	Device string

	// Path overrides the PATH lookup of the backend binary.
	Path string

	// Logger receives diagnostics. Debug events are emitted only when Verbose
	// is set. Nil means no logging.
	Logger *zerolog.Logger
}

// withDefaults returns a copy of o with every unset field replaced by its default.
func (o Options) withDefaults() Options {
	if o.SampleRate == 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.Threshold == nil {
		o.Threshold = Percent(DefaultThreshold)
	}
	if o.Silence == "" {
		o.Silence = DefaultSilence
	}
	switch o.Program {
	case ProgramRec, ProgramSox, ProgramArecord:
	default:
		o.Program = DefaultProgram
	}
	return o
}

// Percent returns a pointer to v for Options.Threshold.
func Percent(v float64) *float64 { return &v }

func (o Options) logger() zerolog.Logger {
	l := zerolog.Nop()
	if o.Logger != nil {
		l = *o.Logger
	}
	if !o.Verbose && l.GetLevel() < zerolog.InfoLevel {
		l = l.Level(zerolog.InfoLevel)
	}
	return l
}
