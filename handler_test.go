package disruptor

import "testing"

func TestHandlerFunc_Process(t *testing.T) {
	var got int
	h := HandlerFunc[int](func(item *int) { got = *item })

	v := 42
	h.Process(&v)
	if got != 42 {
		t.Fatalf("Process() did not invoke the wrapped function, got = %d", got)
	}
}

func TestHandlerFunc_LifecycleHooksAreNoOps(t *testing.T) {
	var h Handler[int] = HandlerFunc[int](func(*int) {})
	// Must not panic.
	h.Start()
	h.Signal(DefaultStopSignal)
	h.Join()
}
