package event

import "testing"

func TestBufferer_DefersDeliveryUntilScopeEnds(t *testing.T) {
	e := NewEmitter[int]()
	defer e.Dispose()

	b := NewBufferer()
	wrapped := BufferEvent(b, e.Event())

	var got []int
	wrapped(func(v int) { got = append(got, v) })

	b.BufferWhile(func() {
		e.Fire(1)
		e.Fire(2)
		e.Fire(3)
		if len(got) != 0 {
			t.Fatalf("delivered during the buffering scope: %v", got)
		}
	})

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBufferer_PassThroughOutsideScope(t *testing.T) {
	e := NewEmitter[int]()
	defer e.Dispose()

	b := NewBufferer()
	var got []int
	BufferEvent(b, e.Event())(func(v int) { got = append(got, v) })

	e.Fire(1)

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("got %v, want immediate delivery of [1]", got)
	}
}

func TestBufferer_ScopesNest(t *testing.T) {
	e := NewEmitter[string]()
	defer e.Dispose()

	b := NewBufferer()
	wrapped := BufferEvent(b, e.Event())

	var got []string
	wrapped(func(v string) { got = append(got, v) })

	b.BufferWhile(func() {
		e.Fire("outer-before")

		b.BufferWhile(func() {
			e.Fire("inner")
		})
		// The inner scope flushed on exit; the outer payload is still held.
		if len(got) != 1 || got[0] != "inner" {
			t.Fatalf("after inner scope got %v, want [inner]", got)
		}

		e.Fire("outer-after")
	})

	want := []string{"inner", "outer-before", "outer-after"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBufferer_PreservesOrderAcrossChannels(t *testing.T) {
	e1 := NewEmitter[string]()
	e2 := NewEmitter[string]()
	defer e1.Dispose()
	defer e2.Dispose()

	b := NewBufferer()
	var got []string
	BufferEvent(b, e1.Event())(func(v string) { got = append(got, v) })
	BufferEvent(b, e2.Event())(func(v string) { got = append(got, v) })

	b.BufferWhile(func() {
		e1.Fire("a")
		e2.Fire("b")
		e1.Fire("c")
	})

	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBufferer_ZeroValueUsable(t *testing.T) {
	e := NewEmitter[int]()
	defer e.Dispose()

	var b Bufferer
	count := 0
	BufferEvent(&b, e.Event())(func(int) { count++ })

	b.BufferWhile(func() {
		e.Fire(1)
	})

	if count != 1 {
		t.Errorf("delivered %d times, want 1", count)
	}
}
