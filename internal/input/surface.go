// Package input is the window-level event surface. Listeners registered
// here see every wheel and gesture event before the page's default action.
package input

import (
	"sync"

	"ModelPreview/internal/logger"

	"go.uber.org/zap"
)

type Kind int

const (
	KindWheel Kind = iota
	KindGestureStart
)

func (k Kind) String() string {
	switch k {
	case KindWheel:
		return "wheel"
	case KindGestureStart:
		return "gesturestart"
	}
	return "unknown"
}

// Event positions are window coordinates in logical pixels.
type Event struct {
	Kind      Kind
	X, Y      float32
	DeltaX    float32
	DeltaY    float32 // positive scrolls content up, like a DOM wheel event
	Modifiers
	prevented bool
}

func (e *Event) PreventDefault() {
	e.prevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

type Listener func(*Event)

type ListenerID uint64

type entry struct {
	id ListenerID
	fn Listener
}

type Surface struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[Kind][]entry
}

func NewSurface() *Surface {
	return &Surface{listeners: make(map[Kind][]entry)}
}

// Listen registers fn for kind. Every Listen needs exactly one Unlisten.
func (s *Surface) Listen(kind Kind, fn Listener) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners[kind] = append(s.listeners[kind], entry{id: id, fn: fn})
	return id
}

// Unlisten removes a listener and reports whether it was registered.
func (s *Surface) Unlisten(kind Kind, id ListenerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.listeners[kind]
	for i, e := range list {
		if e.id == id {
			s.listeners[kind] = append(list[:i:i], list[i+1:]...)
			if len(s.listeners[kind]) == 0 {
				delete(s.listeners, kind)
			}
			return true
		}
	}
	return false
}

// Count is the number of registered listeners across all kinds.
func (s *Surface) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, list := range s.listeners {
		n += len(list)
	}
	return n
}

func (s *Surface) CountKind(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[kind])
}

// Dispatch runs the listeners for ev in registration order and reports
// whether any of them prevented the default action.
func (s *Surface) Dispatch(ev *Event) bool {
	s.mu.Lock()
	list := append([]entry(nil), s.listeners[ev.Kind]...)
	s.mu.Unlock()

	// Listeners may unregister themselves, so run on a snapshot.
	for _, e := range list {
		e.fn(ev)
	}
	return ev.DefaultPrevented()
}

// Registration is a set of listeners acquired together and released together.
type Registration struct {
	surface *Surface
	ids     map[Kind]ListenerID
	once    sync.Once
}

// Acquire registers fn for each kind and returns the handle that removes
// them again.
func (s *Surface) Acquire(fn Listener, kinds ...Kind) *Registration {
	r := &Registration{surface: s, ids: make(map[Kind]ListenerID, len(kinds))}
	for _, k := range kinds {
		r.ids[k] = s.Listen(k, fn)
	}
	return r
}

// Release unregisters the listeners. Only the first call has an effect.
func (r *Registration) Release() {
	released := false
	r.once.Do(func() {
		released = true
		for k, id := range r.ids {
			if !r.surface.Unlisten(k, id) {
				logger.Log.Warn("Listener already removed", zap.Stringer("kind", k))
			}
		}
	})
	if !released {
		logger.Log.Debug("Registration released twice")
	}
}
