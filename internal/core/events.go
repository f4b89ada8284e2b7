package core

import (
	"fmt"
	"sync"
)

// EventKind classifies a notification emitted by the update stage.
type EventKind uint8

const (
	EventScored EventKind = iota + 1
	EventHit
	EventPowerUp
	EventLevelUp
	EventGameOver
	EventShoot
	EventBlip
)

// String returns the camel-case event name used by hooks and metrics.
func (k EventKind) String() string {
	switch k {
	case EventScored:
		return "scored"
	case EventHit:
		return "hit"
	case EventPowerUp:
		return "powerUp"
	case EventLevelUp:
		return "levelUp"
	case EventGameOver:
		return "gameOver"
	case EventShoot:
		return "shoot"
	case EventBlip:
		return "blip"
	}
	return "unknown"
}

// MarshalText lets events serialize with readable kind names.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is a discrete notification from one tick.
type Event struct {
	Game   string    `json:"game"`
	Kind   EventKind `json:"kind"`
	Tick   uint64    `json:"tick"`
	Value  int       `json:"value,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// Logger is the subset of a structured logger used to report hook panics.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Warn(msg interface{}, keyvals ...interface{})
}

const hookBuffer = 64

type hookSub struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// send delivers without blocking. When the buffer is full the oldest
// pending event is dropped to make room.
func (s *hookSub) send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

func (s *hookSub) close() {
	s.once.Do(func() { close(s.done) })
}

// Hooks fans simulation events out to fire-and-forget subscribers.
// Each subscriber runs on its own goroutine, so a slow or failing
// subscriber can never stall the tick that published the event.
type Hooks struct {
	mu     sync.Mutex
	subs   map[int]*hookSub
	nextID int
	logger Logger
	wg     sync.WaitGroup
}

// NewHooks creates an empty hook set. logger may be nil.
func NewHooks(logger Logger) *Hooks {
	return &Hooks{
		subs:   make(map[int]*hookSub),
		logger: logger,
	}
}

// Subscribe registers fn and returns a function that unregisters it.
func (h *Hooks) Subscribe(fn func(Event)) (unsubscribe func()) {
	sub := &hookSub{
		events: make(chan Event, hookBuffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	h.wg.Add(1)
	go h.run(sub, fn)

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		sub.close()
	}
}

func (h *Hooks) run(sub *hookSub, fn func(Event)) {
	defer h.wg.Done()
	for {
		select {
		case <-sub.done:
			return
		case evt := <-sub.events:
			h.deliver(fn, evt)
		}
	}
}

func (h *Hooks) deliver(fn func(Event), evt Event) {
	defer func() {
		if r := recover(); r != nil && h.logger != nil {
			h.logger.Warn("event hook panicked", "event", evt.Kind.String(), "panic", fmt.Sprint(r))
		}
	}()
	fn(evt)
}

// Publish hands events to every subscriber without blocking.
func (h *Hooks) Publish(events ...Event) {
	if len(events) == 0 {
		return
	}
	h.mu.Lock()
	subs := make([]*hookSub, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		for _, evt := range events {
			s.send(evt)
		}
	}
}

// Close stops every subscriber and waits for their goroutines to exit.
// Events still buffered are discarded.
func (h *Hooks) Close() {
	h.mu.Lock()
	for id, s := range h.subs {
		s.close()
		delete(h.subs, id)
	}
	h.mu.Unlock()
	h.wg.Wait()
}
