package bpe

import (
	"bytes"
	"testing"
)

func sym(s string) symbolID {
	if len(s) != 1 {
		panic("single-byte symbol expected")
	}
	return symbolID(s[0])
}

func TestBuildCorpusIndex(t *testing.T) {
	ci := buildCorpusIndex(map[string]int64{
		"ab": 3,
		"ba": 2,
		"a":  7, // single symbol, contributes no pairs
	})

	if got := ci.liveCount(symbolPair{sym("a"), sym("b")}); got != 3 {
		t.Errorf("count(a,b) = %d, want 3", got)
	}
	if got := ci.liveCount(symbolPair{sym("b"), sym("a")}); got != 2 {
		t.Errorf("count(b,a) = %d, want 2", got)
	}
	if got := len(ci.pretokensWith(symbolPair{sym("a"), sym("b")})); got != 1 {
		t.Errorf("pretokensWith(a,b) has %d entries, want 1", got)
	}
	if got := len(ci.pretokens); got != 3 {
		t.Errorf("indexed %d pretokens, want 3", got)
	}
}

func TestBuildCorpusIndexOverlappingRun(t *testing.T) {
	// "aaaa" holds the pair (a,a) at three positions.
	ci := buildCorpusIndex(map[string]int64{"aaaa": 1})

	if got := ci.liveCount(symbolPair{sym("a"), sym("a")}); got != 3 {
		t.Errorf("count(a,a) = %d, want 3", got)
	}
}

func TestRewriteSimple(t *testing.T) {
	ci := buildCorpusIndex(map[string]int64{"abc": 2})
	p := symbolPair{sym("a"), sym("b")}
	merged := ci.symbols.merge(p)

	changed, hit, err := ci.rewrite(0, p, merged)
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if !hit {
		t.Fatal("rewrite reported no match")
	}

	if got := ci.liveCount(p); got != 0 {
		t.Errorf("count(a,b) = %d after merge, want 0", got)
	}
	if got := ci.liveCount(symbolPair{sym("b"), sym("c")}); got != 0 {
		t.Errorf("count(b,c) = %d after merge, want 0", got)
	}
	if got := ci.liveCount(symbolPair{merged, sym("c")}); got != 2 {
		t.Errorf("count(ab,c) = %d after merge, want 2", got)
	}

	// (a,b), (b,c) and (ab,c) all changed.
	if len(changed) != 3 {
		t.Errorf("rewrite reported %d changed pairs, want 3", len(changed))
	}

	want := []symbolID{merged, sym("c")}
	if got := ci.pretokens[0].seq; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("seq after merge = %v, want %v", got, want)
	}
}

func TestRewriteRunConsumesLeftToRight(t *testing.T) {
	// "xxxx" must become (xx)(xx), never x(xx)x.
	ci := buildCorpusIndex(map[string]int64{"xxxx": 1})
	p := symbolPair{sym("x"), sym("x")}
	merged := ci.symbols.merge(p)

	if _, _, err := ci.rewrite(0, p, merged); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	seq := ci.pretokens[0].seq
	if len(seq) != 2 || seq[0] != merged || seq[1] != merged {
		t.Fatalf("seq after merge = %v, want [%d %d]", seq, merged, merged)
	}
	if got := ci.liveCount(p); got != 0 {
		t.Errorf("count(x,x) = %d, want 0", got)
	}
	if got := ci.liveCount(symbolPair{merged, merged}); got != 1 {
		t.Errorf("count(xx,xx) = %d, want 1", got)
	}
}

func TestRewriteStaleIndexEntry(t *testing.T) {
	ci := buildCorpusIndex(map[string]int64{"abc": 1})
	p := symbolPair{sym("a"), sym("b")}
	merged := ci.symbols.merge(p)

	if _, _, err := ci.rewrite(0, p, merged); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	// A second rewrite of the same pair finds nothing and reports a miss.
	changed, hit, err := ci.rewrite(0, p, merged)
	if err != nil {
		t.Fatalf("stale rewrite failed: %v", err)
	}
	if hit || changed != nil {
		t.Errorf("stale rewrite reported hit=%v changed=%v, want miss", hit, changed)
	}
}

func TestByteFidelityAfterRewrites(t *testing.T) {
	counts := map[string]int64{
		" newest": 6,
		" widest": 3,
		"ababab":  2,
	}
	ci := buildCorpusIndex(counts)

	for _, p := range []symbolPair{
		{sym("s"), sym("t")},
		{sym("a"), sym("b")},
	} {
		merged := ci.symbols.merge(p)
		for _, id := range ci.pretokensWith(p) {
			if _, _, err := ci.rewrite(id, p, merged); err != nil {
				t.Fatalf("rewrite failed: %v", err)
			}
		}
	}

	for _, pt := range ci.pretokens {
		var joined []byte
		for _, s := range pt.seq {
			joined = append(joined, ci.symbols.bytesOf(s)...)
		}
		if !bytes.Equal(joined, []byte(pt.key)) {
			t.Errorf("seq of %q concatenates to %q", pt.key, joined)
		}
	}
}

func TestLessPair(t *testing.T) {
	st := newSymbolTable()
	ab := st.merge(symbolPair{sym("a"), sym("b")})

	tests := []struct {
		name string
		a, b symbolPair
		less bool
	}{
		{"first_decides", symbolPair{sym("a"), sym("z")}, symbolPair{sym("b"), sym("a")}, true},
		{"second_decides", symbolPair{sym("a"), sym("b")}, symbolPair{sym("a"), sym("c")}, true},
		{"equal", symbolPair{sym("a"), sym("b")}, symbolPair{sym("a"), sym("b")}, false},
		{"multibyte_first", symbolPair{sym("a"), sym("a")}, symbolPair{ab, sym("a")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := st.lessPair(tt.a, tt.b); got != tt.less {
				t.Errorf("lessPair = %v, want %v", got, tt.less)
			}
		})
	}
}
