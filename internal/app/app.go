package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/petems/recorder/pkg/record"
)

var (
	ErrRecording    = errors.New("already recording")
	ErrNotRecording = errors.New("not recording")
)

// Recorder is the part of *record.Recording the app drives.
type Recorder interface {
	Stop() error
	Pause() error
	Resume() error
	IsPaused() (bool, error)
	Stream() (io.Reader, error)
	Wait() error
}

// Factory starts a recording for the given options.
type Factory func(opts record.Options) (Recorder, error)

// StatusUpdater is an interface for updating status (e.g., tray icon)
type StatusUpdater interface {
	SetIdle()
	SetRecording()
	SetPaused()
	SetError()
}

type Config struct {
	Record        Factory // Optional - defaults to record.Record
	Logger        zerolog.Logger
	StatusUpdater StatusUpdater // Optional - can be nil
}

type App struct {
	start  Factory
	log    zerolog.Logger
	status StatusUpdater

	mu      sync.Mutex
	rec     Recorder
	output  string
	done    chan struct{}
	written int64
	err     error
}

func New(cfg Config) *App {
	start := cfg.Record
	if start == nil {
		start = func(opts record.Options) (Recorder, error) { return record.Record(opts) }
	}
	return &App{
		start:  start,
		log:    cfg.Logger,
		status: cfg.StatusUpdater,
	}
}

// Start begins a recording and copies its stream into w until it ends.
func (a *App) Start(opts record.Options, w io.Writer) error {
	return a.startRecording(opts, w, nil, "")
}

// StartFile records into a new timestamped WAV file under dir and
// returns its path.
func (a *App) StartFile(opts record.Options, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create recordings dir: %w", err)
	}
	path := filepath.Join(dir, "recording-"+time.Now().Format("20060102-150405")+".wav")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	if err := a.startRecording(opts, f, f, path); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (a *App) startRecording(opts record.Options, w io.Writer, closer io.Closer, output string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rec != nil {
		return ErrRecording
	}

	if opts.Logger == nil {
		opts.Logger = &a.log
	}
	rec, err := a.start(opts)
	if err != nil {
		a.setStatus(StatusUpdater.SetError)
		return fmt.Errorf("failed to start recording: %w", err)
	}
	stream, err := rec.Stream()
	if err != nil {
		_ = rec.Stop()
		a.setStatus(StatusUpdater.SetError)
		return fmt.Errorf("failed to open recording stream: %w", err)
	}

	a.rec = rec
	a.output = output
	a.done = make(chan struct{})
	a.written = 0
	a.err = nil

	a.log.Info().Str("output", output).Msg("Started recording")
	a.setStatus(StatusUpdater.SetRecording)

	go a.copyStream(rec, stream, w, closer, a.done)
	return nil
}

func (a *App) copyStream(rec Recorder, stream io.Reader, w io.Writer, closer io.Closer, done chan struct{}) {
	n, copyErr := io.Copy(w, stream)
	if copyErr != nil {
		// The sink is gone; nothing more can be delivered.
		_ = rec.Stop()
	}
	waitErr := rec.Wait()
	if closer != nil {
		if err := closer.Close(); err != nil && copyErr == nil {
			copyErr = err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.written = n
	a.err = errors.Join(copyErr, waitErr)
	a.rec = nil

	if a.err != nil {
		a.log.Error().Err(a.err).Int64("bytes", n).Msg("Recording failed")
		a.setStatus(StatusUpdater.SetError)
	} else {
		a.log.Info().Int64("bytes", n).Str("output", a.output).Msg("Recording finished")
		a.setStatus(StatusUpdater.SetIdle)
	}
	close(done)
}

// TogglePause pauses a running recording or resumes a paused one and
// reports the new state.
func (a *App) TogglePause() (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rec == nil {
		return false, ErrNotRecording
	}

	paused, err := a.rec.IsPaused()
	if err != nil {
		return false, err
	}

	if paused {
		if err := a.rec.Resume(); err != nil {
			return true, err
		}
		a.log.Info().Msg("Resumed recording")
		a.setStatus(StatusUpdater.SetRecording)
		return false, nil
	}

	if err := a.rec.Pause(); err != nil {
		return false, err
	}
	a.log.Info().Msg("Paused recording")
	a.setStatus(StatusUpdater.SetPaused)
	return true, nil
}

// Stop asks the current recording to end. Use Wait for the result.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rec == nil {
		return ErrNotRecording
	}
	a.log.Info().Msg("Stopping recording")
	return a.rec.Stop()
}

// Wait blocks until the last started recording has ended and returns the
// number of bytes written to the sink.
func (a *App) Wait() (int64, error) {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()

	if done == nil {
		return 0, ErrNotRecording
	}
	<-done

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.written, a.err
}

// Done is closed when the last started recording has ended.
func (a *App) Done() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

func (a *App) IsRecording() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rec != nil
}

// Output returns the file of the last recording, if it was written to one.
func (a *App) Output() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.output
}

// Shutdown stops an active recording and waits for it to finish.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.Stop(); err != nil && !errors.Is(err, ErrNotRecording) {
		return err
	}

	a.mu.Lock()
	done := a.done
	a.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) setStatus(fn func(StatusUpdater)) {
	if a.status != nil {
		fn(a.status)
	}
}
