// Package view assembles the image view component: per-instance props, the
// load state machine, the URL optimizer, and the markup renderer, wired to
// the visibility observer for lazy instances.
//
// A View is the unit the storefront embeds once per image. Events from the
// host (mount check, load errors, visibility changes) are fed through the
// Handle methods; Render may be called after any event to get the current
// markup. Failure never surfaces as an error — a broken primary source
// degrades to the configured fallback or to an empty slot.
package view

import (
	"context"
	"sync"

	"github.com/storekit/imageview/internal/observe"
	"github.com/storekit/imageview/internal/optimizer"
	"github.com/storekit/imageview/internal/render"
	"github.com/storekit/imageview/internal/viewstate"
)

// Config carries the collaborators shared across views. A nil Optimizer
// uses the process-wide endpoint at render time; a zero Theme uses the
// default theme.
type Config struct {
	Optimizer *optimizer.Optimizer
	Theme     render.Theme
}

// View is one image instance. Methods are safe for concurrent use; the
// visibility watcher delivers from its own goroutine.
type View struct {
	mu       sync.Mutex
	props    viewstate.Props
	machine  *viewstate.Machine
	opt      *optimizer.Optimizer
	renderer *render.Renderer
	watcher  *observe.Watcher
}

// New creates a view for the given props.
func New(props viewstate.Props, cfg Config) *View {
	return &View{
		props:    props,
		machine:  viewstate.NewMachine(props.Lazy, props.AMP),
		opt:      cfg.Optimizer,
		renderer: render.New(cfg.Theme),
	}
}

// HandleMount feeds the one-shot post-mount check. The host must call it
// after the image element is committed, once the element's load status
// (complete, natural width) is readable — never during rendering.
func (v *View) HandleMount(complete bool, naturalWidth int) {
	v.handle(viewstate.MountCheck(complete, naturalWidth))
}

// HandleError feeds an asynchronous load failure. Safe to call any number
// of times; the not-found latch never resets.
func (v *View) HandleError() {
	v.handle(viewstate.LoadError())
}

// HandleVisibility feeds a visibility change from the observer.
func (v *View) HandleVisibility(visible bool) {
	v.handle(viewstate.Visibility(visible))
}

func (v *View) handle(ev viewstate.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.machine.Handle(ev)
}

// State returns the current load state.
func (v *View) State() viewstate.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.machine.State()
}

// Decision computes the current rendering decision.
func (v *View) Decision() viewstate.Decision {
	v.mu.Lock()
	defer v.mu.Unlock()
	return viewstate.Decide(v.machine.State(), v.props, v.opt)
}

// Render returns the markup for the current state.
func (v *View) Render() (string, error) {
	v.mu.Lock()
	state := v.machine.State()
	props := v.props
	v.mu.Unlock()

	return v.renderer.Render(viewstate.Decide(state, props, v.opt), props)
}

// Bind starts visibility observation for a lazy view, sampling pred on
// the observer's interval. Observation configures the decision's trigger
// margin and stops itself once the view loads; Bind on an instance that
// does not want observation (eager, AMP, or already loaded) is a no-op.
// Unbind or ctx cancellation also ends observation.
func (v *View) Bind(ctx context.Context, pred func() bool) {
	d := v.Decision()
	if !d.Observe {
		return
	}

	v.mu.Lock()
	if v.watcher != nil {
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	loaded := make(chan struct{})
	var once sync.Once
	w := observe.Watch(ctx, pred, observe.Options{Margin: d.Margin}, func(visible bool) {
		v.HandleVisibility(visible)
		if v.State().Loaded {
			once.Do(func() { close(loaded) })
		}
	})

	v.mu.Lock()
	v.watcher = w
	v.mu.Unlock()

	// Loaded is a latch; once it flips there is nothing left to observe.
	// Stopping happens off the delivery goroutine (Stop waits for it).
	go func() {
		select {
		case <-loaded:
		case <-ctx.Done():
		}
		v.Unbind()
	}()
}

// Unbind stops visibility observation, if running.
func (v *View) Unbind() {
	v.mu.Lock()
	w := v.watcher
	v.watcher = nil
	v.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}
