package record

import (
	"os"
	"strconv"
)

// buildCommand resolves the binary name and argument list for o.
// o must already have its defaults applied.
func buildCommand(o Options) (string, []string) {
	rate := strconv.Itoa(o.SampleRate)

	switch o.Program {
	case ProgramArecord:
		var args []string
		if o.Device != "" {
			args = append(args, "-D", o.Device)
		}
		args = append(args,
			"-q",       // no progress
			"-r", rate, // sample rate
			"-c", strconv.Itoa(Channels),
			"-t", "wav",
			"-f", "S16_LE",
			"-", // stdout
		)
		return string(ProgramArecord), args

	case ProgramSox:
		// sox needs -d to read from the default input device, rec implies it.
		return string(ProgramSox), append([]string{"-q", "-d"}, soxArgs(o, rate)[1:]...)

	default:
		return string(ProgramRec), soxArgs(o, rate)
	}
}

func soxArgs(o Options, rate string) []string {
	return []string{
		"-q",
		"-r", rate,
		"-c", strconv.Itoa(Channels),
		"-e", "signed-integer",
		"-b", strconv.Itoa(BitDepth),
		"-t", "wav",
		"-",
		// trim leading silence, then stop after o.Silence below the end threshold
		"silence",
		"1", "0.1", thresholdOr(o.ThresholdStart, *o.Threshold),
		"1", o.Silence, thresholdOr(o.ThresholdEnd, *o.Threshold),
	}
}

func thresholdOr(level string, percent float64) string {
	if level != "" {
		return level
	}
	return strconv.FormatFloat(percent, 'f', -1, 64) + "%"
}

// buildEnv returns the child environment, or nil to inherit the parent's.
func buildEnv(o Options) []string {
	if o.Device == "" {
		return nil
	}
	return append(os.Environ(), deviceEnv+"="+o.Device)
}
