package mocks

import (
	"bilateral/infras/otel"
	"context"
	"sync"
)

// Recorder is a tracer for tests. It exports nothing and remembers span names and the
// errors traced on them.
type Recorder struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, spanName)

	return ctx, &scope{recorder: r}
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

type scope struct {
	recorder *Recorder
}

func (s *scope) TraceError(err error) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.errors = append(s.recorder.errors, err)
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) End() {}
func (s *scope) AddEvent(string) {}
func (s *scope) SetAttribute(string, any) {}
func (s *scope) SetAttributes(map[string]any) {}
