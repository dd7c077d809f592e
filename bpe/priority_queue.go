package bpe

import "container/heap"

// pairCandidate is one heap entry: a pair and the corpus-wide count it
// had when pushed. Entries are never deduplicated or updated in place; a
// popped candidate whose count no longer matches the live pairCount is
// stale and discarded.
type pairCandidate struct {
	count int64
	pair  symbolPair
}

// pairHeap implements a max-heap of merge candidates ordered by count.
type pairHeap []pairCandidate

func (h pairHeap) Len() int { return len(h) }

func (h pairHeap) Less(i, j int) bool {
	// Higher count means higher priority. Candidates with equal counts
	// are unordered here; the engine resolves count ties by popping the
	// whole tied group and comparing pair bytes.
	return h[i].count > h[j].count
}

func (h pairHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *pairHeap) Push(x interface{}) {
	*h = append(*h, x.(pairCandidate))
}

func (h *pairHeap) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[0 : n-1]
	return c
}

// pairQueue is the lazy-invalidation priority queue over pair candidates.
type pairQueue struct {
	entries pairHeap
}

// newPairQueue creates a queue seeded with the given candidates.
func newPairQueue(seed []pairCandidate) *pairQueue {
	q := &pairQueue{entries: pairHeap(seed)}
	heap.Init(&q.entries)
	return q
}

func (q *pairQueue) push(p symbolPair, count int64) {
	heap.Push(&q.entries, pairCandidate{count: count, pair: p})
}

func (q *pairQueue) popMax() pairCandidate {
	return heap.Pop(&q.entries).(pairCandidate)
}

// peekCount returns the count of the current maximum candidate without
// popping it. Valid only when the queue is non-empty.
func (q *pairQueue) peekCount() int64 {
	return q.entries[0].count
}

func (q *pairQueue) len() int {
	return len(q.entries)
}
