package bpe

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openCorpus(t *testing.T, content string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open corpus: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFindChunkBoundariesAligned(t *testing.T) {
	token := "<|endoftext|>"
	content := strings.Repeat("some document body here"+token, 20)
	f := openCorpus(t, content)

	boundaries, err := FindChunkBoundaries(f, 4, []byte(token))
	if err != nil {
		t.Fatalf("FindChunkBoundaries failed: %v", err)
	}

	if boundaries[0] != 0 {
		t.Errorf("first boundary = %d, want 0", boundaries[0])
	}
	if last := boundaries[len(boundaries)-1]; last != int64(len(content)) {
		t.Errorf("last boundary = %d, want %d", last, len(content))
	}

	data := []byte(content)
	for _, b := range boundaries[1 : len(boundaries)-1] {
		if !bytes.HasPrefix(data[b:], []byte(token)) {
			t.Errorf("boundary %d does not start a split token", b)
		}
	}

	for i := 1; i < len(boundaries); i++ {
		if boundaries[i] <= boundaries[i-1] {
			t.Errorf("boundaries not strictly increasing: %v", boundaries)
		}
	}
}

func TestFindChunkBoundariesSparseToken(t *testing.T) {
	// One token occurrence cannot support four chunks; duplicates
	// collapse and the whole tail becomes one range.
	content := "aaaa<|endoftext|>" + strings.Repeat("b", 200)
	f := openCorpus(t, content)

	boundaries, err := FindChunkBoundaries(f, 4, []byte("<|endoftext|>"))
	if err != nil {
		t.Fatalf("FindChunkBoundaries failed: %v", err)
	}
	if len(boundaries) > 3 {
		t.Errorf("got %d boundaries for a single token occurrence: %v", len(boundaries), boundaries)
	}
	if boundaries[len(boundaries)-1] != int64(len(content)) {
		t.Errorf("last boundary = %d, want %d", boundaries[len(boundaries)-1], len(content))
	}
}

func TestFindChunkBoundariesSingleChunk(t *testing.T) {
	f := openCorpus(t, "short")

	boundaries, err := FindChunkBoundaries(f, 1, []byte("<|endoftext|>"))
	if err != nil {
		t.Fatalf("FindChunkBoundaries failed: %v", err)
	}
	want := []int64{0, 5}
	if len(boundaries) != 2 || boundaries[0] != want[0] || boundaries[1] != want[1] {
		t.Errorf("boundaries = %v, want %v", boundaries, want)
	}
}

func TestFindChunkBoundariesEmptyFile(t *testing.T) {
	f := openCorpus(t, "")

	boundaries, err := FindChunkBoundaries(f, 8, []byte("<|endoftext|>"))
	if err != nil {
		t.Fatalf("FindChunkBoundaries failed: %v", err)
	}
	if len(boundaries) != 2 || boundaries[0] != 0 || boundaries[1] != 0 {
		t.Errorf("boundaries = %v, want [0 0]", boundaries)
	}
}

func TestFindChunkBoundariesEmptyToken(t *testing.T) {
	f := openCorpus(t, "content")

	if _, err := FindChunkBoundaries(f, 4, nil); err == nil {
		t.Fatal("expected error for empty split token")
	}
}

func TestFindChunkBoundariesTokenSpansScanBlock(t *testing.T) {
	// Place the only token occurrence so it straddles the edge of the
	// first scan block past the boundary guess; the overlap between
	// blocks must still find it.
	token := "<|endoftext|>"
	const tokenAt = 10000
	content := strings.Repeat("x", tokenAt) + token + strings.Repeat("y", 1807)
	f := openCorpus(t, content)

	guess := int64(len(content)) / 2
	if edge := guess + chunkScanBlock; edge <= tokenAt || edge >= tokenAt+int64(len(token)) {
		t.Fatalf("token does not straddle the scan block edge (edge %d)", edge)
	}

	boundaries, err := FindChunkBoundaries(f, 2, []byte(token))
	if err != nil {
		t.Fatalf("FindChunkBoundaries failed: %v", err)
	}

	data := []byte(content)
	for _, b := range boundaries[1 : len(boundaries)-1] {
		if !bytes.HasPrefix(data[b:], []byte(token)) {
			t.Errorf("boundary %d does not start a split token", b)
		}
	}
}
