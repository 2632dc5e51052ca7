package ring

import "testing"

func TestQueueFIFOOrder(t *testing.T) {
	q := New[string]()
	q.Push("a")
	q.Push("b")
	q.Push("c")

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() returned ok=false, want item %q", want)
		}
		if got != want {
			t.Errorf("Pop() = %q, want %q", got, want)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue returned ok=true")
	}
}

func TestQueueLen(t *testing.T) {
	q := New[int]()
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	if q.Len() != 5 {
		t.Errorf("Len() = %d, want 5", q.Len())
	}
	q.Pop()
	if q.Len() != 4 {
		t.Errorf("Len() = %d, want 4", q.Len())
	}
}

func TestQueueGrowsPastInitialCapacity(t *testing.T) {
	q := New[int]()
	const n = 100
	for i := 0; i < n; i++ {
		q.Push(i)
	}
	for i := 0; i < n; i++ {
		got, ok := q.Pop()
		if !ok || got != i {
			t.Fatalf("Pop() = (%d, %v), want (%d, true)", got, ok, i)
		}
	}
}

func TestQueueInterleavedPushPop(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Push(2)
	if got, _ := q.Pop(); got != 1 {
		t.Fatalf("Pop() = %d, want 1", got)
	}
	q.Push(3)
	q.Push(4)
	for _, want := range []int{2, 3, 4} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
}
