package core

import (
	"sync"
	"testing"
	"time"
)

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingLogger) Warn(msg interface{}, keyvals ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg.(string))
}

func (r *recordingLogger) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHooksDeliver(t *testing.T) {
	h := NewHooks(nil)
	defer h.Close()

	got := make(chan Event, 4)
	h.Subscribe(func(e Event) { got <- e })

	h.Publish(Event{Kind: EventScored, Value: 10})
	select {
	case e := <-got:
		if e.Kind != EventScored || e.Value != 10 {
			t.Errorf("received %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestHooksPanicIsolated(t *testing.T) {
	logger := &recordingLogger{}
	h := NewHooks(logger)
	defer h.Close()

	var mu sync.Mutex
	seen := 0
	h.Subscribe(func(Event) { panic("boom") })
	h.Subscribe(func(Event) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	h.Publish(Event{Kind: EventHit}, Event{Kind: EventHit})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen == 2
	})
	waitFor(t, func() bool { return logger.count() == 2 })
}

func TestHooksSlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHooks(nil)
	release := make(chan struct{})
	h.Subscribe(func(Event) { <-release })

	done := make(chan struct{})
	go func() {
		for i := 0; i < hookBuffer*4; i++ {
			h.Publish(Event{Kind: EventBlip, Value: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	close(release)
	h.Close()
}

func TestHooksUnsubscribe(t *testing.T) {
	h := NewHooks(nil)
	defer h.Close()

	var mu sync.Mutex
	n := 0
	unsubscribe := h.Subscribe(func(Event) {
		mu.Lock()
		n++
		mu.Unlock()
	})
	unsubscribe()
	unsubscribe()

	h.Publish(Event{Kind: EventScored})
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if n != 0 {
		t.Errorf("unsubscribed hook received %d events", n)
	}
}

func TestEventKindNames(t *testing.T) {
	tests := map[EventKind]string{
		EventScored:   "scored",
		EventHit:      "hit",
		EventPowerUp:  "powerUp",
		EventLevelUp:  "levelUp",
		EventGameOver: "gameOver",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("%d.String() = %q, expected %q", k, k.String(), want)
		}
	}
}
