// Package lifecycle exposes quill change streams as lifecycle sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/quill/pkg/core"
)

// noteSource relays core.Event values, which satisfy lifecycle.Event.
type noteSource struct {
	in  <-chan core.Event
	out chan lifecycle.Event
}

// NewSource wraps a change stream from core.Store.Subscribe or a
// core.Watchable storage. The returned source closes its channel once in
// closes or the context given to Start is done.
func NewSource(in <-chan core.Event) lifecycle.Source {
	return &noteSource{in: in, out: make(chan lifecycle.Event)}
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *noteSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.relay)
	return nil
}

func (s *noteSource) relay(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.in:
			if !ok {
				return nil
			}
			e = ev
		}

		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
