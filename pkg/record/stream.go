package record

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// stream hands the backend's stdout to the consumer and holds
// further reads while paused.
type stream struct {
	src io.ReadCloser
	log zerolog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	paused bool
	eof    bool
}

func newStream(src io.ReadCloser, log zerolog.Logger) *stream {
	s := &stream{src: src, log: log}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	for s.paused && !s.eof {
		s.cond.Wait()
	}
	done := s.eof
	s.mu.Unlock()
	if done {
		return 0, io.EOF
	}

	n, err := s.src.Read(p)
	if n > 0 {
		s.log.Debug().Int("bytes", n).Msg("Recording chunk")
	}
	if err != nil {
		if errors.Is(err, os.ErrClosed) {
			err = io.EOF
		}
		if err == io.EOF {
			s.finish()
		}
	}
	return n, err
}

// finish marks the stream drained and releases the read end of the pipe.
func (s *stream) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eof {
		return
	}
	s.eof = true
	s.src.Close()
	s.cond.Broadcast()
	s.log.Debug().Msg("Recording ended")
}

func (s *stream) setPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *stream) isPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}
