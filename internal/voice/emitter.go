package voice

import (
	"sync"
)

type Handler func(Event)

type Subscription interface {
	Unsubscribe()
}

type subscription struct {
	once    sync.Once
	release func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.release)
}

type multiSubscription []Subscription

func (m multiSubscription) Unsubscribe() {
	for _, s := range m {
		s.Unsubscribe()
	}
}

// Combine releases every subscription with a single Unsubscribe call.
func Combine(subs ...Subscription) Subscription {
	return multiSubscription(subs)
}

// Emitter fans SDK events out to registered handlers. Handlers run on the
// goroutine that calls Emit.
type Emitter struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType]map[uint64]Handler
}

func NewEmitter() *Emitter {
	return &Emitter{
		handlers: make(map[EventType]map[uint64]Handler),
	}
}

func (e *Emitter) On(event EventType, h Handler) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID

	if e.handlers[event] == nil {
		e.handlers[event] = make(map[uint64]Handler)
	}
	e.handlers[event][id] = h

	return &subscription{release: func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers[event], id)
		if len(e.handlers[event]) == 0 {
			delete(e.handlers, event)
		}
	}}
}

func (e *Emitter) Emit(ev Event) {
	e.mu.RLock()
	handlers := make([]Handler, 0, len(e.handlers[ev.Type]))
	for _, h := range e.handlers[ev.Type] {
		handlers = append(handlers, h)
	}
	e.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (e *Emitter) HandlerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, hs := range e.handlers {
		n += len(hs)
	}
	return n
}
