package bpe

import (
	"bytes"
	"io"
	"os"
	"sort"
)

// chunkScanBlock is the read size used when scanning forward for a split
// token occurrence.
const chunkScanBlock = 4096

// FindChunkBoundaries returns sorted byte offsets whose consecutive pairs
// define non-overlapping ranges of f, each beginning and ending where an
// occurrence of splitToken starts (or at the file edges). Pretokenization
// workers process the ranges independently; because no range boundary can
// fall inside a pretoken, parallel runs count exactly what a sequential
// run would.
//
// The offsets always start at 0 and end at the file size. Fewer than
// desiredChunks ranges are returned when the token occurrences are too
// sparse.
func FindChunkBoundaries(f *os.File, desiredChunks int, splitToken []byte) ([]int64, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, NewCorpusError("stat", f.Name(), err)
	}
	size := fi.Size()

	if desiredChunks <= 1 || size == 0 {
		return []int64{0, size}, nil
	}
	if len(splitToken) == 0 {
		return nil, NewConfigError("split_token", "", ErrInvalidValue)
	}

	chunkSize := size / int64(desiredChunks)
	if chunkSize == 0 {
		chunkSize = 1
	}

	boundaries := make([]int64, 0, desiredChunks+1)
	boundaries = append(boundaries, 0)
	for i := 1; i < desiredChunks; i++ {
		guess := chunkSize * int64(i)
		aligned, err := nextTokenStart(f, guess, size, splitToken)
		if err != nil {
			return nil, NewCorpusError("scan chunk boundary", f.Name(), err)
		}
		boundaries = append(boundaries, aligned)
	}
	boundaries = append(boundaries, size)

	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i] < boundaries[j] })
	dedup := boundaries[:1]
	for _, b := range boundaries[1:] {
		if b != dedup[len(dedup)-1] {
			dedup = append(dedup, b)
		}
	}
	return dedup, nil
}

// nextTokenStart scans forward from off and returns the offset of the
// first occurrence of token, or size when none remains. Blocks overlap by
// len(token)-1 bytes so occurrences spanning a block edge are found.
func nextTokenStart(f *os.File, off, size int64, token []byte) (int64, error) {
	buf := make([]byte, chunkScanBlock+len(token)-1)
	for off < size {
		n, err := f.ReadAt(buf, off)
		if err != nil && err != io.EOF {
			return 0, err
		}
		if idx := bytes.Index(buf[:n], token); idx >= 0 {
			return off + int64(idx), nil
		}
		if err == io.EOF {
			break
		}
		off += chunkScanBlock
	}
	return size, nil
}
