package event

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/lifecycle"
)

// Every listener registered before a fire sequence receives every payload
// exactly once, in registration order, regardless of listener count or
// payload values.
func TestProperty_AllListenersSeeAllPayloadsInOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		listenerCount := rapid.IntRange(1, 20).Draw(rt, "listeners")
		payloads := rapid.SliceOfN(rapid.Int(), 0, 50).Draw(rt, "payloads")

		e := NewEmitter[int]()
		defer e.Dispose()

		seen := make([][]int, listenerCount)
		for i := 0; i < listenerCount; i++ {
			i := i
			e.Event()(func(v int) { seen[i] = append(seen[i], v) })
		}

		for _, p := range payloads {
			e.Fire(p)
		}

		for i, got := range seen {
			if len(got) != len(payloads) {
				rt.Fatalf("listener %d saw %d payloads, want %d", i, len(got), len(payloads))
			}
			for j := range payloads {
				if got[j] != payloads[j] {
					rt.Fatalf("listener %d saw %v, want %v", i, got, payloads)
				}
			}
		}
	})
}

// Disposing a random subset of subscriptions stops delivery to exactly that
// subset and nothing else.
func TestProperty_DisposalIsExact(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		listenerCount := rapid.IntRange(1, 15).Draw(rt, "listeners")

		e := NewEmitter[int]()
		defer e.Dispose()

		counts := make([]int, listenerCount)
		subs := make([]lifecycle.Disposable, listenerCount)
		for i := 0; i < listenerCount; i++ {
			i := i
			subs[i] = e.Event()(func(int) { counts[i]++ })
		}

		disposed := make([]bool, listenerCount)
		for _, i := range rapid.SliceOfDistinct(rapid.IntRange(0, listenerCount-1), func(i int) int { return i }).Draw(rt, "disposed") {
			subs[i].Dispose()
			disposed[i] = true
		}

		e.Fire(1)

		for i := range counts {
			want := 1
			if disposed[i] {
				want = 0
			}
			if counts[i] != want {
				rt.Fatalf("listener %d delivered %d times, want %d", i, counts[i], want)
			}
		}
	})
}
