package bpecmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/agentstation/bpetrain/bpe"
)

// writeVocabJSON writes the vocabulary as a GPT-2 style JSON object
// mapping printable token strings to ids. Token bytes are rendered with
// the reversible byte-level mapping so arbitrary bytes survive JSON.
func writeVocabJSON(path string, vocab bpe.Vocab) error {
	byToken := make(map[string]int, len(vocab))
	for id, tok := range vocab {
		byToken[bpe.EncodeTokenString(tok)] = id
	}

	data, err := json.Marshal(byToken)
	if err != nil {
		return fmt.Errorf("failed to marshal vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write vocabulary: %w", err)
	}
	return nil
}

// writeMergesText writes the merge list in GPT-2 text form: one
// "first second" pair per line, in merge order.
func writeMergesText(path string, merges []bpe.Merge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create merges file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, m := range merges {
		fmt.Fprintf(w, "%s %s\n", bpe.EncodeTokenString(m.First), bpe.EncodeTokenString(m.Second))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write merges: %w", err)
	}
	return nil
}
