// Package viewstate implements the load state machine for a storefront
// image view.
//
// Each image instance owns two booleans: Loaded (the real element may
// enter the tree and start fetching) and PrimaryNotFound (the primary
// source is known broken and the fallback applies). Both are latches —
// they only ever flip false→true.
//
// # Event Model
//
// Three triggers drive the machine, all delivered as callbacks from the
// host environment's event loop:
//
//   - a one-shot mount check, evaluated after the element is committed,
//     catching sources the host already resolved as broken
//   - asynchronous load-error events from the element
//   - visibility-change events from the external visibility observer
//
// The transition function is pure and total over all four state
// combinations, so the machine can be unit-tested without any DOM-like
// host. Pending×NotFound — a mount check or error arriving while a lazy
// instance is still gated — is a legal state: the not-found latch is
// carried and the fallback renders once the instance loads.
//
// # Rendering Decision
//
// Decide maps (State, Props) to a Decision: the effective URL (optimized
// primary or verbatim fallback), fit flags, AMP layout hint, element
// presence, and whether visibility observation should be running. It is
// recomputed every render and never mutates anything.
//
// Failure is modeled entirely as state. Nothing in this package returns
// an error; a broken image degrades to the fallback or to an empty slot.
package viewstate
