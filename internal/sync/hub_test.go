package syncx

import "testing"

func TestHubLatestSnapshotWins(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("rubric/1")
	defer cancel()

	h.Publish("rubric/1", []byte("v1"))
	h.Publish("rubric/1", []byte("v2"))
	h.Publish("rubric/1", []byte("v3"))

	select {
	case got := <-ch:
		if string(got) != "v3" {
			t.Fatalf("snapshot = %q, want v3 (latest wins)", got)
		}
	default:
		t.Fatal("expected a buffered snapshot")
	}
	select {
	case got := <-ch:
		t.Fatalf("stale snapshot %q still buffered", got)
	default:
	}
}

func TestHubTopicsAreIndependent(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe("rubric/a")
	defer cancelA()
	b, cancelB := h.Subscribe("rubric/b")
	defer cancelB()

	h.Publish("rubric/a", []byte("only-a"))

	select {
	case got := <-a:
		if string(got) != "only-a" {
			t.Fatalf("snapshot = %q", got)
		}
	default:
		t.Fatal("subscriber a missed its snapshot")
	}
	select {
	case got := <-b:
		t.Fatalf("topic crosstalk: b got %q", got)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("students")
	cancel()
	cancel() // idempotent

	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after cancel")
	}
	// Publishing to a topic with no subscribers left must not panic.
	h.Publish("students", []byte("x"))
}
