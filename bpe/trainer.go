package bpe

// Train learns a byte-level BPE tokenizer from the UTF-8 corpus at
// inputPath. It returns the vocabulary and the ordered merge list.
//
// vocabSize is the target vocabulary size including the 256 byte tokens
// and the special tokens. A vocabSize of 256 or less returns the
// single-byte vocabulary and no merges regardless of the corpus.
// specialTokens act as hard cut points during pretokenization and receive
// vocabulary ids per the configured placement; the list may be empty.
//
// Example:
//
//	vocab, merges, err := bpe.Train("corpus.txt", 10000,
//	    []string{"<|endoftext|>"},
//	    bpe.WithWorkers(8),
//	)
func Train(inputPath string, vocabSize int, specialTokens []string, opts ...Option) (Vocab, []Merge, error) {
	cfg := defaultTrainerConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, nil, err
		}
	}

	if vocabSize <= 256 {
		return baseVocab(), nil, nil
	}

	counts, err := PretokenCounts(inputPath, specialTokens, cfg.workers)
	if err != nil {
		return nil, nil, err
	}

	return trainFromCounts(counts, vocabSize, specialTokens, cfg)
}

// TrainFromCounts runs the merge engine on a prebuilt pretoken frequency
// table. The merges list is a function of the table alone, so two calls
// with equal tables produce identical results.
func TrainFromCounts(counts map[string]int64, vocabSize int, specialTokens []string, opts ...Option) (Vocab, []Merge, error) {
	cfg := defaultTrainerConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, nil, err
		}
	}

	if vocabSize <= 256 {
		return baseVocab(), nil, nil
	}

	return trainFromCounts(counts, vocabSize, specialTokens, cfg)
}

func trainFromCounts(counts map[string]int64, vocabSize int, specialTokens []string, cfg *trainerConfig) (Vocab, []Merge, error) {
	budget := vocabSize - 256 - len(specialTokens)
	if budget < 0 {
		return nil, nil, NewConfigError("vocab_size", vocabSize, ErrVocabSizeTooSmall)
	}

	index := buildCorpusIndex(counts)
	engine := newMergeEngine(index, cfg.progress)
	if err := engine.run(budget); err != nil {
		return nil, nil, err
	}

	vocab := assembleVocab(index.symbols, engine.merges, specialTokens, cfg.placement)
	merges := resolveMerges(index.symbols, engine.merges)
	return vocab, merges, nil
}
