package viewstate

// State holds the per-image view state.
//
// Both fields are latches: they can flip false→true, and no event ever
// flips them back. Transition enforces this; callers should treat State
// as opaque apart from reading the two fields.
type State struct {
	// Loaded reports that the real image element should be in the tree,
	// i.e. network loading may begin.
	Loaded bool `json:"loaded"`

	// PrimaryNotFound reports that the primary source has been confirmed
	// to fail. Terminal for the instance; there is no retry.
	PrimaryNotFound bool `json:"primary_not_found"`
}

// EventKind enumerates the three triggers the state machine reacts to.
type EventKind int

const (
	// EventMountCheck is the one-shot synchronous check that runs right
	// after the image element is first committed to the tree. It catches
	// images the host already knows are broken (e.g. a cached 404), which
	// would otherwise never deliver an error event.
	EventMountCheck EventKind = iota

	// EventLoadError is an asynchronous load failure reported by the
	// image element. May be delivered any number of times.
	EventLoadError

	// EventVisibility is a visibility change reported by the external
	// visibility observer.
	EventVisibility
)

// String returns the event kind name for logs and test failures.
func (k EventKind) String() string {
	switch k {
	case EventMountCheck:
		return "mount-check"
	case EventLoadError:
		return "load-error"
	case EventVisibility:
		return "visibility"
	default:
		return "unknown"
	}
}

// Event is one delivery from the host environment.
//
// Complete and NaturalWidth are meaningful only for EventMountCheck;
// Visible only for EventVisibility. EventLoadError carries no payload.
type Event struct {
	Kind EventKind

	// Complete mirrors the host element's "load settled" flag at mount.
	Complete bool

	// NaturalWidth is the intrinsic width the host element reported at
	// mount. A settled element with zero intrinsic width is a failed load.
	NaturalWidth int

	// Visible is the current visibility for EventVisibility events.
	Visible bool
}

// MountCheck builds the one-shot post-mount event from the host element's
// reported load status.
func MountCheck(complete bool, naturalWidth int) Event {
	return Event{Kind: EventMountCheck, Complete: complete, NaturalWidth: naturalWidth}
}

// LoadError builds an asynchronous load-failure event.
func LoadError() Event {
	return Event{Kind: EventLoadError}
}

// Visibility builds a visibility-change event.
func Visibility(visible bool) Event {
	return Event{Kind: EventVisibility, Visible: visible}
}

// Initial returns the state a new image instance starts in.
//
// Non-lazy images are loaded immediately. AMP images are always treated
// as loaded regardless of lazy: the AMP runtime manages its own loading,
// so this machine never gates AMP markup.
func Initial(lazy, amp bool) State {
	return State{Loaded: !lazy || amp}
}

// Transition is the pure transition function. It returns the state that
// follows s on receiving ev, without side effects.
//
// Transitions:
//   - mount check with Complete && NaturalWidth == 0 latches PrimaryNotFound
//   - load error latches PrimaryNotFound unconditionally (idempotent)
//   - visibility true latches Loaded when still pending; everything else,
//     including becoming invisible again, is a no-op
//
// All four combinations of (Loaded, PrimaryNotFound) are legal inputs.
// In particular a pending instance may already have PrimaryNotFound set
// (mount check raced ahead of lazy gating); the latch is simply carried
// until Loaded flips and the fallback renders.
func Transition(s State, ev Event) State {
	switch ev.Kind {
	case EventMountCheck:
		if ev.Complete && ev.NaturalWidth == 0 {
			s.PrimaryNotFound = true
		}
	case EventLoadError:
		s.PrimaryNotFound = true
	case EventVisibility:
		if !s.Loaded && ev.Visible {
			s.Loaded = true
		}
	}
	return s
}

// Machine owns the state for one image instance and applies events in
// arrival order. It is not synchronized: the host delivers all events on
// a single event loop, matching the UI-thread execution model.
type Machine struct {
	state State
}

// NewMachine creates a machine in the Initial state for the given modes.
func NewMachine(lazy, amp bool) *Machine {
	return &Machine{state: Initial(lazy, amp)}
}

// Handle applies one event and reports whether the state changed.
func (m *Machine) Handle(ev Event) bool {
	next := Transition(m.state, ev)
	changed := next != m.state
	m.state = next
	return changed
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}
