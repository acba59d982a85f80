// Package queue 提供按来源 UAV 计数的任务队列与本地池。
//
// 任务单元本身不可区分，只携带来源（origin）标签。内部使用按 origin 升序
// 排列的切片保存计数，出队、搬运都严格按 origin 升序进行，计数为 0 的来源
// 会被立即删除。
package queue

import (
	"golang.org/x/exp/slices"
)

// Batch 同一来源的一批任务
type Batch struct {
	Origin int `json:"origin"`
	Count  int `json:"count"`
}

// counts 按 Origin 升序排列的来源计数表，所有 Count 均 > 0
type counts []Batch

func (c counts) total() int {
	sum := 0
	for _, b := range c {
		sum += b.Count
	}
	return sum
}

func (c counts) search(origin int) (int, bool) {
	return slices.BinarySearchFunc(c, origin, func(b Batch, o int) int {
		return b.Origin - o
	})
}

func (c counts) add(origin, n int) counts {
	if n <= 0 {
		return c
	}
	i, ok := c.search(origin)
	if ok {
		c[i].Count += n
		return c
	}
	return slices.Insert(c, i, Batch{Origin: origin, Count: n})
}

// take 按来源升序取出最多 n 个任务，返回取出的批次
func (c counts) take(n int) (counts, []Batch) {
	if n <= 0 || len(c) == 0 {
		return c, nil
	}
	taken := make([]Batch, 0, len(c))
	i := 0
	for i < len(c) && n > 0 {
		move := min(c[i].Count, n)
		taken = append(taken, Batch{Origin: c[i].Origin, Count: move})
		c[i].Count -= move
		n -= move
		if c[i].Count > 0 {
			break
		}
		i++
	}
	// 删除已取空的来源
	return slices.Delete(c, 0, i), taken
}

func (c counts) clone() []Batch {
	return append([]Batch(nil), c...)
}

// ProvenanceQueue 有界的按来源计数队列（传输队列/计算队列）
type ProvenanceQueue struct {
	capacity int
	entries  counts
}

// NewProvenanceQueue 创建容量为 capacity 的队列
func NewProvenanceQueue(capacity int) *ProvenanceQueue {
	return &ProvenanceQueue{capacity: capacity}
}

// Capacity 队列容量
func (q *ProvenanceQueue) Capacity() int {
	return q.capacity
}

// Len 队列中任务总数
func (q *ProvenanceQueue) Len() int {
	return q.entries.total()
}

// Available 剩余容量，不会小于 0
func (q *ProvenanceQueue) Available() int {
	return max(0, q.capacity-q.Len())
}

// IsEmpty 队列是否为空
func (q *ProvenanceQueue) IsEmpty() bool {
	return len(q.entries) == 0
}

// Enqueue 以来源 origin 加入 n 个任务，超出容量的部分被丢弃。
// added + dropped == n 总是成立（n < 0 视为 0）。
func (q *ProvenanceQueue) Enqueue(origin, n int) (added, dropped int) {
	if n <= 0 {
		return 0, 0
	}
	added = min(n, q.Available())
	q.entries = q.entries.add(origin, added)
	return added, n - added
}

// Dequeue 取出最多 n 个任务，按来源 id 升序、先取空一个来源再取下一个。
// 返回值中每个元素对应一个任务单元的来源。
func (q *ProvenanceQueue) Dequeue(n int) []int {
	var batches []Batch
	q.entries, batches = q.entries.take(n)
	if len(batches) == 0 {
		return nil
	}
	origins := make([]int, 0, n)
	for _, b := range batches {
		for k := 0; k < b.Count; k++ {
			origins = append(origins, b.Origin)
		}
	}
	return origins
}

// Count 指定来源的任务数
func (q *ProvenanceQueue) Count(origin int) int {
	if i, ok := q.entries.search(origin); ok {
		return q.entries[i].Count
	}
	return 0
}

// Entries 按来源升序返回计数副本
func (q *ProvenanceQueue) Entries() []Batch {
	return q.entries.clone()
}

// Pool 无容量上限的按来源计数本地池（local_tx / local_cp）
type Pool struct {
	entries counts
}

// NewPool 创建空池
func NewPool() *Pool {
	return &Pool{}
}

// Add 以来源 origin 放入 n 个任务
func (p *Pool) Add(origin, n int) {
	p.entries = p.entries.add(origin, n)
}

// Len 池中任务总数
func (p *Pool) Len() int {
	return p.entries.total()
}

// IsEmpty 池是否为空
func (p *Pool) IsEmpty() bool {
	return len(p.entries) == 0
}

// Take 按来源升序取出最多 limit 个任务
func (p *Pool) Take(limit int) []Batch {
	var batches []Batch
	p.entries, batches = p.entries.take(limit)
	return batches
}

// Count 指定来源的任务数
func (p *Pool) Count(origin int) int {
	if i, ok := p.entries.search(origin); ok {
		return p.entries[i].Count
	}
	return 0
}

// Entries 按来源升序返回计数副本
func (p *Pool) Entries() []Batch {
	return p.entries.clone()
}
