package event

import "testing"

func TestDispatchReachesSubscribers(t *testing.T) {
	d := NewDispatcher()

	got := 0
	d.Subscribe("test", ListenerFunc(func(e Event) {
		got++
		if e.Data.(int) != 42 {
			t.Fatalf("payload = %v, want 42", e.Data)
		}
	}))

	d.Dispatch(Event{Type: "test", Data: 42})
	d.Dispatch(Event{Type: "other", Data: 0})

	if got != 1 {
		t.Fatalf("listener ran %d times, want 1", got)
	}
}

type countingListener struct{ n int }

func (c *countingListener) OnEvent(Event) { c.n++ }

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()

	l := &countingListener{}
	d.Subscribe("test", l)
	d.Unsubscribe("test", l)

	d.Dispatch(Event{Type: "test"})
	if l.n != 0 {
		t.Fatal("unsubscribed listener must not run")
	}
}
