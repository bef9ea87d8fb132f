package tryon

import (
	"context"
	"io"
	"log"
	"os"
	"sync"
)

var sessionLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("TRYON_DEBUG_SESSION") == "1" {
		sessionLogger = log.New(os.Stdout, "[session] ", log.Ltime|log.Lmsgprefix)
	}
}

// Outcome is delivered for the latest request of a session once it finishes.
type Outcome struct {
	Generation uint64
	Request    Request
	Result     *Result // nil on failure
	Err        error
}

// Session serializes try-on requests from an interactive caller. Every
// Submit supersedes the previous request: a superseded request may still
// decode in the background, but its result is never delivered and it never
// touches the canvas of a newer request.
type Session struct {
	comp     *Compositor
	onResult func(Outcome)

	mu         sync.Mutex
	generation uint64
	inFlight   bool
	cancel     context.CancelFunc
	superseded int
	closed     bool

	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// NewSession returns a session delivering outcomes to onResult. onResult is
// called from a background goroutine, one outcome at a time, and may call
// Submit.
func NewSession(comp *Compositor, onResult func(Outcome)) *Session {
	if onResult == nil {
		onResult = func(Outcome) {}
	}
	return &Session{comp: comp, onResult: onResult}
}

// Submit starts rendering req and returns its generation. After Close it
// does nothing and returns 0.
func (s *Session) Submit(ctx context.Context, req Request) uint64 {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		sessionLogger.Printf("submit after close: %v", req.Source)
		return 0
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.inFlight = true
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	sessionLogger.Printf("#%d submitted: %v %v", gen, req.Source, req.Source.Path())

	go func() {
		defer s.wg.Done()
		defer cancel()
		s.run(ctx, gen, req)
	}()
	return gen
}

func (s *Session) run(ctx context.Context, gen uint64, req Request) {
	res, err := s.render(ctx, gen, req)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	if gen != s.generation {
		s.superseded++
		s.mu.Unlock()
		sessionLogger.Printf("#%d superseded, dropping result", gen)
		return
	}
	s.inFlight = false
	s.mu.Unlock()

	if err != nil {
		sessionLogger.Printf("#%d failed: %v", gen, err)
	} else {
		sessionLogger.Printf("#%d done via %v", gen, res.Path)
	}
	s.onResult(Outcome{Generation: gen, Request: req, Result: res, Err: err})
}

func (s *Session) render(ctx context.Context, gen uint64, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	s.comp.processing.Add(1)
	defer s.comp.processing.Add(-1)

	buf, err := s.comp.Decode(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	// A newer request may have arrived while decoding.
	if !s.current(gen) {
		return nil, ErrSuperseded
	}
	return s.comp.Compose(buf, req)
}

func (s *Session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

// Processing reports whether the latest request is still in flight.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Superseded returns how many finished requests were dropped.
func (s *Session) Superseded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.superseded
}

// Wait blocks until every submitted request has finished.
func (s *Session) Wait() { s.wg.Wait() }

// Close cancels the in-flight request and waits for background work. Later
// submissions are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++ // nothing pending is delivered after Close
	s.inFlight = false
	s.mu.Unlock()
	s.wg.Wait()
}
