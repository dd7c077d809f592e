// Package bpe trains byte-level BPE tokenizers in pure Go.
//
// Given a UTF-8 corpus, a target vocabulary size, and a list of special
// token strings, training produces a vocabulary mapping token ids to byte
// strings and an ordered list of merges that reconstruct the tokenizer's
// segmentation behavior.
//
// # Overview
//
// Training runs in two phases:
//
//  1. Pretokenization: the corpus is cut at every special token occurrence
//     and each segment is split into pretokens by a state machine that
//     replicates the GPT-2 pretokenization regex. Chunks of the corpus are
//     counted in parallel and the per-worker frequency tables are summed.
//  2. Merging: the most frequent adjacent symbol pair across all pretokens
//     is repeatedly replaced by a new symbol. Pair statistics are updated
//     incrementally, so each selection costs O(log P) rather than a full
//     recount of the corpus.
//
// # Architecture
//
//	┌─────────────┐
//	│ Corpus file │
//	└──────┬──────┘
//	       │
//	       ▼
//	┌─────────────────┐     ┌─────────────────┐
//	│ Chunk boundary  │────▶│ Worker pool     │
//	│ alignment       │     │ pretokenization │
//	└─────────────────┘     └────────┬────────┘
//	                                 │
//	                                 ▼
//	                        ┌─────────────────┐
//	                        │ Corpus index    │
//	                        │ (pair counts)   │
//	                        └────────┬────────┘
//	                                 │
//	                                 ▼
//	                        ┌─────────────────┐
//	                        │ Merge engine    │
//	                        │ (lazy max-heap) │
//	                        └────────┬────────┘
//	                                 │
//	                                 ▼
//	                        ┌─────────────────┐
//	                        │ Vocab + merges  │
//	                        └─────────────────┘
//
// # Basic Usage
//
//	vocab, merges, err := bpe.Train("corpus.txt", 10000, []string{"<|endoftext|>"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A prebuilt pretoken frequency table can be fed to the engine directly:
//
//	vocab, merges, err := bpe.TrainFromCounts(counts, 512, nil)
//
// # Determinism
//
// The merges list is a function of the pretoken frequency table alone.
// Worker count and chunking never affect the result: ties between pairs
// with equal frequency are broken by lexicographic byte comparison, and
// rewrites consume matches non-overlapping, left to right.
//
// # Error Handling
//
// The package defines custom error types:
//   - CorpusError: the corpus file cannot be opened or read
//   - ConfigError: an option or argument has an invalid value
//   - InvariantError: internal pair accounting was violated (a bug, not a
//     data condition; training aborts with the offending pair and pretoken)
//
// All errors support unwrapping via errors.Is and errors.As.
package bpe
