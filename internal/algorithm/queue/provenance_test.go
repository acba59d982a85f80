package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/queue"
)

func TestEnqueueRespectsCapacity(t *testing.T) {
	q := queue.NewProvenanceQueue(5)

	added, dropped := q.Enqueue(1, 3)
	assert.Equal(t, 3, added)
	assert.Equal(t, 0, dropped)

	added, dropped = q.Enqueue(2, 4)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, 0, q.Available())

	// 满队列时全部丢弃
	added, dropped = q.Enqueue(0, 1)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 0, q.Count(0))
}

func TestEnqueueZeroAndSelfOrigin(t *testing.T) {
	q := queue.NewProvenanceQueue(3)

	added, dropped := q.Enqueue(7, 0)
	assert.Zero(t, added)
	assert.Zero(t, dropped)
	assert.True(t, q.IsEmpty())
	assert.Empty(t, q.Entries(), "零个任务不应留下计数为 0 的来源")
}

func TestEnqueueConservation(t *testing.T) {
	q := queue.NewProvenanceQueue(10)
	for _, n := range []int{4, 0, 3, 9, 1} {
		before := q.Len()
		added, dropped := q.Enqueue(n%3, n)
		assert.Equal(t, n, added+dropped)
		assert.Equal(t, before+added, q.Len())
		assert.LessOrEqual(t, q.Len(), q.Capacity())
	}
}

func TestDequeueAscendingOrigin(t *testing.T) {
	q := queue.NewProvenanceQueue(20)
	q.Enqueue(2, 3)
	q.Enqueue(5, 1)
	q.Enqueue(1, 2)

	assert.Equal(t, []int{1, 1, 2, 2}, q.Dequeue(4))
	assert.Equal(t, []queue.Batch{{Origin: 2, Count: 1}, {Origin: 5, Count: 1}}, q.Entries())

	assert.Equal(t, []int{2, 5}, q.Dequeue(10))
	assert.True(t, q.IsEmpty())
	assert.Nil(t, q.Dequeue(1))
}

func TestDequeueNonPositive(t *testing.T) {
	q := queue.NewProvenanceQueue(4)
	q.Enqueue(3, 2)

	assert.Nil(t, q.Dequeue(0))
	assert.Nil(t, q.Dequeue(-1))
	assert.Equal(t, 2, q.Len())
}

func TestDequeueRemovesExhaustedOrigins(t *testing.T) {
	q := queue.NewProvenanceQueue(10)
	q.Enqueue(4, 2)
	q.Enqueue(1, 1)

	q.Dequeue(1)
	assert.Zero(t, q.Count(1))
	for _, e := range q.Entries() {
		assert.Positive(t, e.Count)
	}
}

func TestPoolTake(t *testing.T) {
	p := queue.NewPool()
	p.Add(3, 4)
	p.Add(0, 2)
	p.Add(3, 1)
	require.Equal(t, 7, p.Len())

	batches := p.Take(4)
	assert.Equal(t, []queue.Batch{{Origin: 0, Count: 2}, {Origin: 3, Count: 2}}, batches)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 3, p.Count(3))

	assert.Equal(t, []queue.Batch{{Origin: 3, Count: 3}}, p.Take(100))
	assert.True(t, p.IsEmpty())
	assert.Empty(t, p.Take(1))
}
