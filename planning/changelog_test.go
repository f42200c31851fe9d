package planning

import (
	"sync"
	"testing"

	"go.viam.com/test"
)

func TestChangeLogDrainIsAtomicAndOrdered(t *testing.T) {
	c := newChangeLog[string]()
	c.push("a", "b", 1, 2)
	c.push("b", "c", 3, 4)

	drained := c.drain()
	test.That(t, drained, test.ShouldHaveLength, 2)
	test.That(t, drained[0], test.ShouldResemble, costChange[string]{"a", "b", 1, 2})
	test.That(t, drained[1], test.ShouldResemble, costChange[string]{"b", "c", 3, 4})

	test.That(t, c.drain(), test.ShouldBeEmpty)
}

func TestChangeLogConcurrentPush(t *testing.T) {
	c := newChangeLog[int]()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.push(i, i+1, Cost(i), Cost(i+1))
		}(i)
	}
	wg.Wait()
	test.That(t, c.drain(), test.ShouldHaveLength, 100)
}
