// Package record runs an external recording program (rec, sox or arecord)
// and exposes its WAV output as a stream, with stop, pause and resume
// delivered to the process as signals.
package record

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Recording is one backend process and its output stream.
type Recording struct {
	opts Options
	log  zerolog.Logger
	path string
	args []string
	env  []string

	mu       sync.Mutex
	cmd      *exec.Cmd
	stream   *stream
	started  bool
	stopping bool
	err      error
	done     chan struct{}
}

// New resolves opts against the defaults and prepares the backend command.
// The process is not spawned until Start.
func New(opts Options) (*Recording, error) {
	if opts.SampleRate < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, opts.SampleRate)
	}

	resolved := opts.withDefaults()
	log := opts.logger()

	if opts.Program != "" && opts.Program != resolved.Program {
		log.Warn().Str("program", string(opts.Program)).Str("fallback", string(resolved.Program)).
			Msg("Unknown record program")
	}

	name, args := buildCommand(resolved)
	if resolved.Path != "" {
		name = resolved.Path
	}

	return &Recording{
		opts: resolved,
		log:  log,
		path: name,
		args: args,
		env:  buildEnv(resolved),
		done: make(chan struct{}),
	}, nil
}

// Record creates a recording and starts it.
func Record(opts Options) (*Recording, error) {
	r, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := r.Start(); err != nil {
		return nil, err
	}
	return r, nil
}

// Start spawns the backend. A backend that cannot be executed is not
// reported here: Done closes, Wait returns the failure and the stream
// reads EOF.
func (r *Recording) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	cmd := exec.Command(r.path, r.args...)
	cmd.Stdout = pw
	cmd.Env = r.env
	detach(cmd)
	if r.opts.Verbose {
		cmd.Stderr = os.Stderr
	}

	r.cmd = cmd
	r.stream = newStream(pr, r.log)
	r.started = true

	r.log.Debug().Str("cmd", r.path+" "+strings.Join(r.args, " ")).Msg("Starting recording")

	err = cmd.Start()
	// The child holds its own copy of the write end; EOF arrives when it exits.
	pw.Close()
	if err != nil {
		r.err = fmt.Errorf("failed to start %s: %w", r.path, err)
		r.log.Error().Err(err).Str("program", r.path).Msg("Recording failed to start")
		r.stream.finish()
		close(r.done)
		return nil
	}

	r.log.Info().Str("program", r.path).Int("pid", cmd.Process.Pid).
		Int("sample_rate", r.opts.SampleRate).Msg("Started recording")

	go r.wait()
	return nil
}

func (r *Recording) wait() {
	err := r.cmd.Wait()

	r.mu.Lock()
	if err != nil && !(r.stopping && stoppedBySignal(err)) {
		r.err = err
	}
	// Nothing can resume a process that is gone; let the reader drain to EOF.
	r.stream.setPaused(false)
	r.mu.Unlock()

	if err != nil {
		r.log.Debug().Err(err).Msg("Recording process exited")
	} else {
		r.log.Debug().Msg("Recording process exited")
	}
	close(r.done)
}

// process returns the running process, or an error if there is none.
func (r *Recording) process() (*os.Process, error) {
	if !r.started {
		return nil, ErrNotStarted
	}
	select {
	case <-r.done:
		return nil, ErrEnded
	default:
	}
	return r.cmd.Process, nil
}

// Stop terminates the backend. The stream ends once the process is gone.
func (r *Recording) Stop() error {
	r.mu.Lock()
	p, err := r.process()
	if err != nil {
		r.mu.Unlock()
		if errors.Is(err, ErrEnded) {
			return nil
		}
		return err
	}
	r.stopping = true
	paused := r.stream.isPaused()
	r.mu.Unlock()

	err = terminate(p)
	if paused {
		// A stopped process only acts on SIGTERM once continued.
		_ = resume(p)
		r.stream.setPaused(false)
	}
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to stop recording: %w", err)
	}
	r.log.Debug().Msg("Stopped recording")
	return nil
}

// Pause suspends the backend and holds further reads from the stream.
// Data already in the pipe stays there until Resume.
func (r *Recording) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.process()
	if err != nil {
		return err
	}
	if err := suspend(p); err != nil {
		return fmt.Errorf("failed to pause recording: %w", err)
	}
	r.stream.setPaused(true)
	r.log.Debug().Msg("Paused recording")
	return nil
}

// Resume continues a paused backend and releases the stream.
func (r *Recording) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.process()
	if err != nil {
		return err
	}
	if err := resume(p); err != nil {
		return fmt.Errorf("failed to resume recording: %w", err)
	}
	r.stream.setPaused(false)
	r.log.Debug().Msg("Resumed recording")
	return nil
}

// IsPaused reports whether the stream is currently held.
func (r *Recording) IsPaused() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return false, ErrNotStarted
	}
	return r.stream.isPaused(), nil
}

// Stream returns the backend's WAV output. The header is written by the
// backend before the length is known, so it carries no usable size.
func (r *Recording) Stream() (io.Reader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream == nil {
		return nil, ErrNotStarted
	}
	return r.stream, nil
}

// Done is closed when the backend has exited or failed to start.
func (r *Recording) Done() <-chan struct{} { return r.done }

// Wait blocks until the backend exits. It returns nil for a normal exit or
// one caused by Stop.
func (r *Recording) Wait() error {
	<-r.done
	return r.Err()
}

// Err returns the exit or spawn error, if any.
func (r *Recording) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Running reports whether the backend has been started and not yet exited.
func (r *Recording) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.process()
	return err == nil
}

// Pid returns the backend process id, or 0 if it is not running.
func (r *Recording) Pid() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.process()
	if err != nil {
		return 0
	}
	return p.Pid
}

// Command returns the executable and arguments the backend runs with.
func (r *Recording) Command() (string, []string) {
	return r.path, append([]string(nil), r.args...)
}

// Env returns the backend environment, or nil when it inherits the parent's.
func (r *Recording) Env() []string {
	return append([]string(nil), r.env...)
}

// Options returns the resolved options.
func (r *Recording) Options() Options { return r.opts }
