// Package observe is the visibility-observation collaborator for lazy
// image loading.
//
// The load state machine does not know how visibility is detected; it only
// consumes boolean "is this element visible" events. This package supplies
// those events from a caller-provided predicate: a Watcher samples the
// predicate on an interval and invokes the callback on every change. In a
// browser-backed host the predicate wraps the real intersection check; in
// tests it is a plain closure.
//
// All callbacks for one Watcher are delivered from a single goroutine, in
// order, never concurrently — matching the event-loop delivery model the
// state machine assumes. A stopped Watcher delivers nothing, so a torn-down
// image view stops receiving events without further coordination.
package observe

import (
	"context"
	"time"
)

// DefaultInterval is the predicate sampling interval when none is given.
const DefaultInterval = 100 * time.Millisecond

// Options configures a watch.
type Options struct {
	// Margin is the symmetric trigger margin in pixels. Negative values
	// shrink the effective viewport, requiring the element to be that far
	// inside it. The margin is not interpreted here; it is handed to the
	// predicate owner via the Margin accessor for hosts that need it.
	Margin int

	// Interval is the predicate sampling interval. Zero means
	// DefaultInterval.
	Interval time.Duration
}

// Watcher samples a visibility predicate and reports changes.
type Watcher struct {
	opts   Options
	pred   func() bool
	cancel context.CancelFunc
	done   chan struct{}
}

// Watch starts observing pred and calls fn with the new visibility on
// every change. The first sample is always reported, so a consumer that
// starts visible learns so immediately. Watching stops when ctx is
// cancelled or Stop is called; fn is never invoked after Stop returns.
func Watch(ctx context.Context, pred func() bool, opts Options, fn func(visible bool)) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		opts:   opts,
		pred:   pred,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go w.run(ctx, fn)
	return w
}

// Margin returns the configured trigger margin.
func (w *Watcher) Margin() int {
	return w.opts.Margin
}

// Stop ends observation and waits for the delivery goroutine to exit.
// After Stop returns, no further callbacks are delivered. Stop is safe to
// call more than once.
func (w *Watcher) Stop() {
	w.cancel()
	<-w.done
}

func (w *Watcher) run(ctx context.Context, fn func(visible bool)) {
	defer close(w.done)

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	// Initial sample before the first tick.
	last := w.pred()
	fn(last)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if v := w.pred(); v != last {
				last = v
				fn(v)
			}
		}
	}
}
