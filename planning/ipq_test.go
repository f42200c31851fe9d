package planning

import (
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func intKey(v int) Key {
	return Key{Primary: Cost(v), Secondary: 0}
}

// TestIPQOrderedInsertThenUpdate inserts integers 0..999 in random
// order, swaps 200 random pairs' orderings and Updates each, then polls
// in sequence and expects the polled orderings to be 0..999.
func TestIPQOrderedInsertThenUpdate(t *testing.T) {
	const n = 1000
	q := NewIPQ[int]()

	order := rand.New(rand.NewSource(1)).Perm(n)
	values := make([]int, n)
	for i := range values {
		values[i] = i
	}
	for _, i := range order {
		q.Add(values[i], intKey(values[i]))
	}
	test.That(t, q.Size(), test.ShouldEqual, n)

	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		a, b := r.Intn(n), r.Intn(n)
		// values[p] is the ordering of payload p.
		values[a], values[b] = values[b], values[a]
		q.Update(a, intKey(values[a]))
		q.Update(b, intKey(values[b]))
	}

	for expect := 0; expect < n; expect++ {
		v, _, ok := q.Poll()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, values[v], test.ShouldEqual, expect)
	}
	test.That(t, q.IsEmpty(), test.ShouldBeTrue)
}

// TestIPQHeapifyAfterBulkMutation mutates keys out of band without
// per-swap Update calls, then calls Heapify once and expects sorted
// polling order.
func TestIPQHeapifyAfterBulkMutation(t *testing.T) {
	const n = 1000
	q := NewIPQ[int]()
	order := rand.New(rand.NewSource(3)).Perm(n)
	for _, v := range order {
		q.Add(v, intKey(v))
	}

	r := rand.New(rand.NewSource(4))
	for i := 0; i < 200; i++ {
		a, b := r.Intn(n), r.Intn(n)
		ia, ib := q.index[a], q.index[b]
		q.keys[ia], q.keys[ib] = q.keys[ib], q.keys[ia]
	}
	q.Heapify()

	// Keys moved between payloads above, so the sorted order is that of
	// the polled keys.
	for expect := 0; expect < n; expect++ {
		_, k, ok := q.Poll()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, k, test.ShouldResemble, intKey(expect))
	}
}

func TestIPQBasics(t *testing.T) {
	q := NewIPQ[string]()
	test.That(t, q.IsEmpty(), test.ShouldBeTrue)

	_, _, ok := q.Peek()
	test.That(t, ok, test.ShouldBeFalse)

	q.Add("b", Key{Primary: 2})
	q.Add("a", Key{Primary: 1})
	q.Add("c", Key{Primary: 3})
	test.That(t, q.Contains("a"), test.ShouldBeTrue)
	test.That(t, q.Size(), test.ShouldEqual, 3)

	v, _, ok := q.Peek()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, "a")

	removed := q.Remove("b")
	test.That(t, removed, test.ShouldBeTrue)
	test.That(t, q.Contains("b"), test.ShouldBeFalse)
	test.That(t, q.Size(), test.ShouldEqual, 2)

	q.Update("a", Key{Primary: 5})
	v, _, ok = q.Peek()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, "c")

	q.Clear()
	test.That(t, q.IsEmpty(), test.ShouldBeTrue)
}

func TestIPQUpdateUnknownPanics(t *testing.T) {
	q := NewIPQ[int]()
	test.That(t, func() { q.Update(42, Key{}) }, test.ShouldPanic)
}
