package lifecycle

import "testing"

func TestToDisposable_RunsAtMostOnce(t *testing.T) {
	count := 0
	d := ToDisposable(func() { count++ })

	d.Dispose()
	d.Dispose()
	d.Dispose()

	if count != 1 {
		t.Errorf("release action ran %d times, want 1", count)
	}
}

func TestToDisposable_Nil(t *testing.T) {
	d := ToDisposable(nil)
	if d != None {
		t.Error("expected None for nil release action")
	}
}

func TestNone_MultipleDispose(t *testing.T) {
	// Must be safely releasable any number of times.
	None.Dispose()
	None.Dispose()
}

func TestCombine_DisposesInArgumentOrder(t *testing.T) {
	var order []int
	d := Combine(
		ToDisposable(func() { order = append(order, 1) }),
		ToDisposable(func() { order = append(order, 2) }),
		ToDisposable(func() { order = append(order, 3) }),
	)

	d.Dispose()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("dispose order = %v, want [1 2 3]", order)
	}
}

func TestCombine_IsolatesPanics(t *testing.T) {
	disposed := false
	d := Combine(
		ToDisposable(func() { panic("release failed") }),
		ToDisposable(func() { disposed = true }),
	)

	d.Dispose()

	if !disposed {
		t.Error("panic in earlier release prevented later release")
	}
}

func TestCombine_Idempotent(t *testing.T) {
	count := 0
	d := Combine(ToDisposable(func() { count++ }))

	d.Dispose()
	d.Dispose()

	if count != 1 {
		t.Errorf("combined release ran %d times, want 1", count)
	}
}

func TestDisposeAll(t *testing.T) {
	count := 0
	subs := []Disposable{
		ToDisposable(func() { count++ }),
		ToDisposable(func() { count++ }),
	}

	subs = DisposeAll(subs)

	if count != 2 {
		t.Errorf("disposed %d resources, want 2", count)
	}
	if subs != nil {
		t.Errorf("DisposeAll returned %v, want nil", subs)
	}
}
