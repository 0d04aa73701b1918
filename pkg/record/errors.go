package record

import "errors"

var (
	// ErrNotStarted is returned by lifecycle calls made before Start.
	ErrNotStarted = errors.New("recording not yet started")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("recording already started")

	// ErrEnded is returned by Pause and Resume once the backend has exited.
	ErrEnded = errors.New("recording has ended")

	// ErrInvalidSampleRate is returned by New for a negative sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be a positive integer")

	// ErrPauseUnsupported is returned on platforms without job-control signals.
	ErrPauseUnsupported = errors.New("pause/resume not supported on this platform")
)
