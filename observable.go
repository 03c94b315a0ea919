package aster

// PriorityMax is the highest listener priority. The root scene's
// window-resize listener registers at this priority so the pixel area is
// updated before any user listener observes the resize.
const PriorityMax = int(^uint(0) >> 1)

// Handle identifies a registered listener and removes it on demand.
// The zero Handle is a no-op.
type Handle struct {
	remove func()
}

// Remove unregisters the listener. Safe to call more than once.
func (h Handle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// HandleSet collects listener handles registered on behalf of one owner
// (a Scene, Plot, Camera, or Transformation) so they can be released
// together when the owner is torn down.
type HandleSet struct {
	handles []Handle
}

// Add records a handle for later release.
func (hs *HandleSet) Add(h Handle) {
	hs.handles = append(hs.handles, h)
}

// Len returns the number of recorded handles.
func (hs *HandleSet) Len() int {
	return len(hs.handles)
}

// ReleaseAll removes every recorded handle and empties the set.
func (hs *HandleSet) ReleaseAll() {
	for _, h := range hs.handles {
		h.Remove()
	}
	hs.handles = nil
}

// Source is the untyped view of an observable. OnAny and multi-source
// derivations use it where the element type is irrelevant.
type Source interface {
	connect(priority int, fn func()) Handle
}

type listener[T any] struct {
	id       uint64
	priority int
	fn       func(T)
}

// Observable is a reactive cell holding a value of type T. Setting a new
// value synchronously invokes registered listeners in priority-descending
// order (registration order breaks ties) unless the new value is equal to
// the old one under the configured equality policy.
//
// Observables are not safe for concurrent use; a single logical owner
// drives all scene-graph mutation (see Scene).
type Observable[T any] struct {
	value     T
	listeners []listener[T]
	equal     func(a, b T) bool // nil means always notify
	nextID    uint64
}

// NewObservable creates an observable with value-equality change detection:
// Set with an equal value does not notify.
func NewObservable[T comparable](v T) *Observable[T] {
	return &Observable[T]{
		value: v,
		equal: func(a, b T) bool { return a == b },
	}
}

// NewObservableFunc creates an observable with a custom equality policy.
// A nil equal function means every Set notifies ("always notify"). Use this
// form for element types that are not comparable (slices, funcs).
func NewObservableFunc[T any](v T, equal func(a, b T) bool) *Observable[T] {
	return &Observable[T]{value: v, equal: equal}
}

// AlwaysNotify disables equality filtering so every Set notifies.
// Returns the observable for chaining at construction sites.
func (o *Observable[T]) AlwaysNotify() *Observable[T] {
	o.equal = nil
	return o
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	return o.value
}

// Set replaces the value and notifies listeners, unless the new value is
// equal to the current one under the equality policy.
func (o *Observable[T]) Set(v T) {
	if o.equal != nil && o.equal(o.value, v) {
		return
	}
	o.value = v
	o.notify()
}

// notify invokes listeners over a snapshot so a callback may remove itself
// (or other listeners) without corrupting the iteration.
func (o *Observable[T]) notify() {
	if len(o.listeners) == 0 {
		return
	}
	snapshot := make([]listener[T], len(o.listeners))
	copy(snapshot, o.listeners)
	for _, l := range snapshot {
		l.fn(o.value)
	}
}

// On registers fn at priority 0 without an immediate invocation.
// The returned handle is also recorded in owner when owner is non-nil.
func (o *Observable[T]) On(owner *HandleSet, fn func(T)) Handle {
	return o.OnPriority(owner, 0, false, fn)
}

// OnPriority registers fn at the given priority. Higher priorities are
// invoked first; listeners of equal priority run in registration order.
// When update is true, fn is invoked immediately with the current value.
// The returned handle is also recorded in owner when owner is non-nil.
func (o *Observable[T]) OnPriority(owner *HandleSet, priority int, update bool, fn func(T)) Handle {
	o.nextID++
	l := listener[T]{id: o.nextID, priority: priority, fn: fn}

	// Insert after every listener with priority >= ours.
	at := len(o.listeners)
	for i, existing := range o.listeners {
		if existing.priority < priority {
			at = i
			break
		}
	}
	o.listeners = append(o.listeners, listener[T]{})
	copy(o.listeners[at+1:], o.listeners[at:])
	o.listeners[at] = l

	id := l.id
	h := Handle{remove: func() { o.removeListener(id) }}
	if owner != nil {
		owner.Add(h)
	}
	if update {
		fn(o.value)
	}
	return h
}

func (o *Observable[T]) removeListener(id uint64) {
	for i, l := range o.listeners {
		if l.id == id {
			copy(o.listeners[i:], o.listeners[i+1:])
			o.listeners[len(o.listeners)-1] = listener[T]{}
			o.listeners = o.listeners[:len(o.listeners)-1]
			return
		}
	}
}

// NumListeners returns the number of registered listeners.
func (o *Observable[T]) NumListeners() int {
	return len(o.listeners)
}

// Clear removes every listener without changing the value. Used during
// scene teardown to sever all remaining subscriptions at once.
func (o *Observable[T]) Clear() {
	o.listeners = nil
}

// connect implements Source.
func (o *Observable[T]) connect(priority int, fn func()) Handle {
	return o.OnPriority(nil, priority, false, func(T) { fn() })
}

// OnAny invokes fn (with no arguments) whenever any of the sources changes.
// Handles are recorded in owner when owner is non-nil. fn is NOT invoked
// immediately; callers that need an initial computation perform it
// themselves with current values.
func OnAny(owner *HandleSet, fn func(), sources ...Source) {
	for _, src := range sources {
		h := src.connect(0, fn)
		if owner != nil {
			owner.Add(h)
		}
	}
}

// Map creates a derived observable initialized to f of the source's current
// value and kept up to date on every source change. The link handle is
// recorded in owner when owner is non-nil.
func Map[A any, T comparable](owner *HandleSet, src *Observable[A], f func(A) T) *Observable[T] {
	out := NewObservable(f(src.Get()))
	src.OnPriority(owner, 0, false, func(a A) { out.Set(f(a)) })
	return out
}

// Map2 is the two-source form of Map.
func Map2[A, B any, T comparable](owner *HandleSet, a *Observable[A], b *Observable[B], f func(A, B) T) *Observable[T] {
	out := NewObservable(f(a.Get(), b.Get()))
	recompute := func() { out.Set(f(a.Get(), b.Get())) }
	OnAny(owner, recompute, a, b)
	return out
}

// Map3 is the three-source form of Map.
func Map3[A, B, C any, T comparable](owner *HandleSet, a *Observable[A], b *Observable[B], c *Observable[C], f func(A, B, C) T) *Observable[T] {
	out := NewObservable(f(a.Get(), b.Get(), c.Get()))
	recompute := func() { out.Set(f(a.Get(), b.Get(), c.Get())) }
	OnAny(owner, recompute, a, b, c)
	return out
}

// Link establishes a one-way mirror from src to dst: dst immediately takes
// src's current value and follows every subsequent change. The handle is
// recorded in owner when owner is non-nil.
func Link[T any](owner *HandleSet, src, dst *Observable[T]) Handle {
	return src.OnPriority(owner, 0, true, func(v T) { dst.Set(v) })
}
