package bpe

import "bytes"

// symbolID identifies an interned symbol. Ids 0..255 are the single
// bytes; each merge interns at most one new symbol (none when its
// concatenation is already interned).
type symbolID int32

// symbolPair is an ordered adjacency of two symbols inside a pretoken
// sequence. Fixed-size arrays are comparable, so it serves directly as a
// map key.
type symbolPair [2]symbolID

// symbolTable interns symbol byte strings to small integer ids so pair
// keys are a pair of integers rather than a pair of byte strings.
type symbolTable struct {
	byID [][]byte
	ids  map[string]symbolID
}

func newSymbolTable() *symbolTable {
	t := &symbolTable{
		byID: make([][]byte, 0, 512),
		ids:  make(map[string]symbolID, 512),
	}
	for b := 0; b < 256; b++ {
		s := []byte{byte(b)}
		t.ids[string(s)] = symbolID(b)
		t.byID = append(t.byID, s)
	}
	return t
}

// bytesOf returns the byte string of a symbol. The returned slice is
// shared and must be treated as read-only.
func (t *symbolTable) bytesOf(id symbolID) []byte {
	return t.byID[id]
}

// merge interns the concatenation of a pair's two symbols and returns its
// id. Re-merging a pair that was already interned returns the existing id.
func (t *symbolTable) merge(p symbolPair) symbolID {
	first := t.byID[p[0]]
	second := t.byID[p[1]]
	merged := make([]byte, 0, len(first)+len(second))
	merged = append(merged, first...)
	merged = append(merged, second...)

	if id, ok := t.ids[string(merged)]; ok {
		return id
	}
	id := symbolID(len(t.byID))
	t.ids[string(merged)] = id
	t.byID = append(t.byID, merged)
	return id
}

// lessPair orders pairs by the bytes of their first symbol, then their
// second. The merge engine selects the greatest pair under this order
// when counts tie.
func (t *symbolTable) lessPair(a, b symbolPair) bool {
	if c := bytes.Compare(t.byID[a[0]], t.byID[b[0]]); c != 0 {
		return c < 0
	}
	return bytes.Compare(t.byID[a[1]], t.byID[b[1]]) < 0
}

// pretokenEntry carries the mutable state of one distinct pretoken: its
// stable key (the original bytes), its corpus frequency, and its current
// symbol sequence.
type pretokenEntry struct {
	key   string
	count int64
	seq   []symbolID
}

// corpusIndex is the mutable in-memory representation of every distinct
// pretoken plus the reverse indexes the merge engine selects from:
//
//   - pairCount[q] is the corpus-wide frequency of pair q, defined as the
//     sum over pretokens p of count(p) times the number of positions i
//     with seq(p)[i..i+1] == q.
//   - pairIndex[q] is the set of pretokens whose sequence contains q.
//     Entries may be stale; rewrite confirms containment before acting.
//
// The index is built once from the pretokenizer output and mutated in
// place by the merge engine. It is not safe for concurrent use.
type corpusIndex struct {
	symbols   *symbolTable
	pretokens []*pretokenEntry
	pairCount map[symbolPair]int64
	pairIndex map[symbolPair]map[int]struct{}
}

// buildCorpusIndex constructs the initial index from a pretoken frequency
// table. Each pretoken starts as its sequence of single-byte symbols.
func buildCorpusIndex(counts map[string]int64) *corpusIndex {
	ci := &corpusIndex{
		symbols:   newSymbolTable(),
		pretokens: make([]*pretokenEntry, 0, len(counts)),
		pairCount: make(map[symbolPair]int64),
		pairIndex: make(map[symbolPair]map[int]struct{}),
	}

	for key, count := range counts {
		if count <= 0 || len(key) == 0 {
			continue
		}
		seq := make([]symbolID, len(key))
		for i := 0; i < len(key); i++ {
			seq[i] = symbolID(key[i])
		}
		id := len(ci.pretokens)
		ci.pretokens = append(ci.pretokens, &pretokenEntry{key: key, count: count, seq: seq})

		for i := 0; i+1 < len(seq); i++ {
			q := symbolPair{seq[i], seq[i+1]}
			ci.pairCount[q] += count
			ci.addMember(q, id)
		}
	}

	return ci
}

func (ci *corpusIndex) addMember(q symbolPair, id int) {
	set, ok := ci.pairIndex[q]
	if !ok {
		set = make(map[int]struct{})
		ci.pairIndex[q] = set
	}
	set[id] = struct{}{}
}

// pretokensWith returns a snapshot of the pretokens indexed under a pair.
// The result may include stale entries whose sequence no longer contains
// the pair; rewrite discards those lazily.
func (ci *corpusIndex) pretokensWith(q symbolPair) []int {
	set := ci.pairIndex[q]
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// rewrite replaces every non-overlapping left-to-right occurrence of the
// pair inside one pretoken's sequence with the merged symbol, and updates
// pairCount and pairIndex by the exact difference between the pretoken's
// adjacency counts before and after the rewrite, scaled by its frequency.
//
// Computing the delta from a before/after recount of the single affected
// pretoken keeps the global invariant exact even when occurrences of the
// pair touch each other (first == second inside a run). The left-to-right
// scan consumes both elements of a match, so a run like "xxxx" becomes
// (xx)(xx), never x(xx)x.
//
// It returns the pairs whose corpus-wide count changed, true when the
// sequence actually contained the pair, and an error only on invariant
// violations.
func (ci *corpusIndex) rewrite(id int, q symbolPair, merged symbolID) ([]symbolPair, bool, error) {
	pt := ci.pretokens[id]
	old := pt.seq

	before := make(map[symbolPair]int64, len(old))
	for i := 0; i+1 < len(old); i++ {
		before[symbolPair{old[i], old[i+1]}]++
	}
	if before[q] == 0 {
		// Stale pairIndex entry: the pair was rewritten out of this
		// pretoken by an earlier merge.
		delete(ci.pairIndex[q], id)
		return nil, false, nil
	}

	next := make([]symbolID, 0, len(old))
	i := 0
	for i < len(old) {
		if i+1 < len(old) && old[i] == q[0] && old[i+1] == q[1] {
			next = append(next, merged)
			i += 2
		} else {
			next = append(next, old[i])
			i++
		}
	}
	if len(next) >= len(old) {
		return nil, false, NewInvariantError("rewrite",
			ci.symbols.bytesOf(q[0]), ci.symbols.bytesOf(q[1]), pt.key, ErrInvariant)
	}
	pt.seq = next

	after := make(map[symbolPair]int64, len(next))
	for i := 0; i+1 < len(next); i++ {
		after[symbolPair{next[i], next[i+1]}]++
	}

	changed := make([]symbolPair, 0, len(before)+len(after))
	for p, n := range before {
		delta := after[p] - n
		if delta == 0 {
			continue
		}
		ci.pairCount[p] += delta * pt.count
		if ci.pairCount[p] < 0 {
			return nil, false, NewInvariantError("rewrite",
				ci.symbols.bytesOf(p[0]), ci.symbols.bytesOf(p[1]), pt.key, ErrInvariant)
		}
		if after[p] == 0 {
			delete(ci.pairIndex[p], id)
		}
		changed = append(changed, p)
	}
	for p, n := range after {
		if before[p] != 0 {
			continue // delta already applied above
		}
		ci.pairCount[p] += n * pt.count
		ci.addMember(p, id)
		changed = append(changed, p)
	}

	return changed, true, nil
}

// liveCount returns the current corpus-wide frequency of a pair.
func (ci *corpusIndex) liveCount(q symbolPair) int64 {
	return ci.pairCount[q]
}
