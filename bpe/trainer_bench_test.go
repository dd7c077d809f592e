package bpe

import (
	"fmt"
	"strings"
	"testing"
)

// benchCounts builds a synthetic pretoken frequency table with a long
// tail of distinct words.
func benchCounts(words int) map[string]int64 {
	counts := make(map[string]int64, words)
	for i := 0; i < words; i++ {
		counts[fmt.Sprintf(" word%d", i)] = int64(words - i)
	}
	counts[" the"] = int64(words * 10)
	counts[" and"] = int64(words * 8)
	return counts
}

func BenchmarkTrainFromCounts(b *testing.B) {
	for _, words := range []int{100, 1000} {
		counts := benchCounts(words)
		b.Run(fmt.Sprintf("words_%d", words), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := TrainFromCounts(counts, 512, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSplitPretokens(b *testing.B) {
	segment := strings.Repeat("the quick brown fox jumps over 13 lazy dogs, again and again. ", 50)
	b.ReportAllocs()
	b.SetBytes(int64(len(segment)))
	for i := 0; i < b.N; i++ {
		splitPretokens(segment)
	}
}

func BenchmarkRewrite(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		ci := buildCorpusIndex(map[string]int64{strings.Repeat("ab", 64): 1})
		p := symbolPair{symbolID('a'), symbolID('b')}
		merged := ci.symbols.merge(p)
		b.StartTimer()
		if _, _, err := ci.rewrite(0, p, merged); err != nil {
			b.Fatal(err)
		}
	}
}
