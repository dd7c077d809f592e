package bpe

// mergeEngine runs the merge phase: select the most frequent pair under
// the deterministic tie-break, rewrite every pretoken containing it, feed
// the changed pair counts back into the queue, and repeat until the merge
// budget is spent or no pair with count >= 1 remains.
//
// The merge phase is single-threaded. Every iteration mutates pairCount,
// pairIndex, and the affected pretoken sequences in place; parallelizing
// it would serialize on those structures anyway.
type mergeEngine struct {
	index    *corpusIndex
	queue    *pairQueue
	merges   []symbolPair
	progress func(Progress)
}

// newMergeEngine seeds the queue from the initial pair counts.
func newMergeEngine(index *corpusIndex, progress func(Progress)) *mergeEngine {
	seed := make([]pairCandidate, 0, len(index.pairCount))
	for p, c := range index.pairCount {
		if c >= 1 {
			seed = append(seed, pairCandidate{count: c, pair: p})
		}
	}
	return &mergeEngine{
		index:    index,
		queue:    newPairQueue(seed),
		progress: progress,
	}
}

// run performs up to maxMerges merges. It halts early when no pair with
// count >= 1 remains.
func (e *mergeEngine) run(maxMerges int) error {
	for len(e.merges) < maxMerges {
		p, count, ok := e.selectPair()
		if !ok {
			break
		}
		if err := e.applyMerge(p); err != nil {
			return err
		}
		if e.progress != nil {
			e.progress(Progress{
				MergesDone: len(e.merges),
				VocabSize:  256 + len(e.merges),
				Pair: Merge{
					First:  e.index.symbols.bytesOf(p[0]),
					Second: e.index.symbols.bytesOf(p[1]),
				},
				PairCount: count,
			})
		}
	}
	return nil
}

// selectPair pops the next merge target: the pair with the greatest live
// count, ties broken by the greatest pair under lexicographic byte
// comparison of first, then second.
//
// The heap orders by count alone, so the tie-break pops every candidate
// sharing the top count, discards stale ones, keeps the lexicographically
// greatest of the rest, and re-pushes the others unchanged.
func (e *mergeEngine) selectPair() (symbolPair, int64, bool) {
	for e.queue.len() > 0 {
		top := e.queue.popMax()
		if top.count < 1 || top.count != e.index.liveCount(top.pair) {
			continue // stale
		}

		best := top.pair
		var rest []pairCandidate
		for e.queue.len() > 0 && e.queue.peekCount() == top.count {
			next := e.queue.popMax()
			if next.count != e.index.liveCount(next.pair) {
				continue
			}
			if e.index.symbols.lessPair(best, next.pair) {
				rest = append(rest, pairCandidate{count: top.count, pair: best})
				best = next.pair
			} else {
				rest = append(rest, next)
			}
		}
		for _, c := range rest {
			e.queue.push(c.pair, c.count)
		}

		return best, top.count, true
	}
	return symbolPair{}, 0, false
}

// applyMerge interns the merged symbol, rewrites every pretoken indexed
// under the pair, and pushes the live counts of every changed pair back
// onto the queue.
func (e *mergeEngine) applyMerge(p symbolPair) error {
	merged := e.index.symbols.merge(p)
	e.merges = append(e.merges, p)

	changed := make(map[symbolPair]struct{})
	rewrote := false
	for _, id := range e.index.pretokensWith(p) {
		deltas, hit, err := e.index.rewrite(id, p, merged)
		if err != nil {
			return err
		}
		rewrote = rewrote || hit
		for _, q := range deltas {
			changed[q] = struct{}{}
		}
	}
	if !rewrote {
		// The pair was selected with a live count >= 1, so some indexed
		// pretoken must still contain it.
		return NewInvariantError("apply merge",
			e.index.symbols.bytesOf(p[0]), e.index.symbols.bytesOf(p[1]), "", ErrInvariant)
	}

	for q := range changed {
		if c := e.index.liveCount(q); c >= 1 {
			e.queue.push(q, c)
		}
	}
	return nil
}
