package lifecycle

import "testing"

func TestTrack_RecordsUntilDisposed(t *testing.T) {
	SetTracking(true)
	defer SetTracking(false)
	defer ResetTracking()

	d := Track("subscription", None)

	found := false
	for _, info := range Live() {
		if info.Label == "subscription" {
			found = true
		}
	}
	if !found {
		t.Fatal("tracked resource not reported by Live")
	}

	d.Dispose()

	for _, info := range Live() {
		if info.Label == "subscription" {
			t.Error("disposed resource still reported by Live")
		}
	}
}

func TestTrack_DisabledIsPassthrough(t *testing.T) {
	SetTracking(false)
	defer ResetTracking()

	if d := Track("noop", None); d != None {
		t.Error("Track with tracking disabled should return the resource unchanged")
	}
	if n := len(Live()); n != 0 {
		t.Errorf("Live reported %d entries with tracking disabled, want 0", n)
	}
}
