package bpe

import (
	"bytes"
	"os"
	"runtime"
	"sync"
)

// PretokenCounts reads the corpus at inputPath and returns its pretoken
// frequency table. The corpus is cut at every exact occurrence of any
// special token (the tokens themselves are discarded and never appear as
// pretokens), and each remaining segment is split by the GPT-2
// pretokenization pattern.
//
// Workers is a parallelism hint; zero selects one worker per CPU. Chunk
// boundaries are aligned to special-token cuts, so the returned table is
// identical for every worker count. When no special tokens are given the
// corpus is processed as a single segment.
func PretokenCounts(inputPath string, specialTokens []string, workers int) (map[string]int64, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, NewCorpusError("open", inputPath, err)
	}
	defer f.Close()

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Workers share one read-only copy of the corpus and operate on
	// non-overlapping sub-slices of it.
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, NewCorpusError("read", inputPath, err)
	}

	var boundaries []int64
	if len(specialTokens) == 0 || workers == 1 {
		boundaries = []int64{0, int64(len(data))}
	} else {
		boundaries, err = FindChunkBoundaries(f, workers, []byte(specialTokens[0]))
		if err != nil {
			return nil, err
		}
	}

	specials := make([][]byte, len(specialTokens))
	for i, s := range specialTokens {
		specials[i] = []byte(s)
	}

	results := make(chan map[string]int64, len(boundaries))
	var wg sync.WaitGroup
	for i := 0; i+1 < len(boundaries); i++ {
		chunk := data[boundaries[i]:boundaries[i+1]]
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- countChunk(chunk, specials)
		}()
	}
	wg.Wait()
	close(results)

	counts := make(map[string]int64)
	for local := range results {
		for tok, n := range local {
			counts[tok] += n
		}
	}
	return counts, nil
}

// countChunk pretokenizes one chunk into a local frequency table. Chunks
// are per-worker, so no locking is needed.
func countChunk(chunk []byte, specials [][]byte) map[string]int64 {
	counts := make(map[string]int64)
	for _, segment := range splitOnSpecials(chunk, specials) {
		for _, tok := range splitPretokens(string(segment)) {
			counts[tok]++
		}
	}
	return counts
}

// splitOnSpecials cuts data at every exact occurrence of any special
// token and drops the tokens themselves. At a given position the
// earliest match wins; among matches at the same position the longest
// wins, so a special token that is a prefix of another never splits it
// apart.
func splitOnSpecials(data []byte, specials [][]byte) [][]byte {
	if len(specials) == 0 {
		if len(data) == 0 {
			return nil
		}
		return [][]byte{data}
	}

	var segments [][]byte
	remaining := data
	for len(remaining) > 0 {
		bestPos := -1
		bestLen := 0
		for _, tok := range specials {
			if len(tok) == 0 {
				continue
			}
			pos := bytes.Index(remaining, tok)
			if pos < 0 {
				continue
			}
			if bestPos < 0 || pos < bestPos || (pos == bestPos && len(tok) > bestLen) {
				bestPos = pos
				bestLen = len(tok)
			}
		}

		if bestPos < 0 {
			segments = append(segments, remaining)
			break
		}
		if bestPos > 0 {
			segments = append(segments, remaining[:bestPos])
		}
		remaining = remaining[bestPos+bestLen:]
	}

	return segments
}
