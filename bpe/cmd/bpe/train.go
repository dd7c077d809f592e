package bpecmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/bpetrain/bpe"
)

var (
	// Train command flags.
	trainVocabSize     int
	trainSpecialTokens []string
	trainWorkers       int
	trainSpecialsFirst bool
	trainVocabOut      string
	trainMergesOut     string
	trainOutput        string
	trainMetrics       bool
	trainVerbose       bool
	trainLogEvery      int
)

// newTrainCmd creates the train subcommand.
func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train [corpus]",
		Short: "Learn a BPE vocabulary and merge list from a corpus",
		Long: `Train a byte-level BPE tokenizer on a UTF-8 corpus file.

The corpus is cut at every special token occurrence, pretokenized in
parallel with the GPT-2 pattern, and merged until the vocabulary reaches
the target size. Special tokens receive vocabulary ids after the merge
ids by default; --specials-first places them directly after the byte ids.

Artifacts are written in the GPT-2 text formats: the vocabulary as a JSON
object mapping printable token strings to ids, and the merges as one
"first second" pair per line.`,
		Example: `  # Train a 10k vocabulary
  bpetrain bpe train corpus.txt --vocab-size 10000 --special-token "<|endoftext|>"

  # Write artifacts and report metrics
  bpetrain bpe train corpus.txt --vocab-size 10000 \
    --vocab-out vocab.json --merges-out merges.txt --metrics

  # Log every 100th merge while training
  bpetrain bpe train corpus.txt --vocab-size 32000 --verbose --log-every 100`,
		Args: cobra.ExactArgs(1),
		RunE: runTrain,
	}

	// Add flags
	cmd.Flags().IntVar(&trainVocabSize, "vocab-size", 512, "Target vocabulary size (bytes + merges + special tokens)")
	cmd.Flags().StringArrayVar(&trainSpecialTokens, "special-token", nil, "Special token acting as a hard cut point (repeatable)")
	cmd.Flags().IntVar(&trainWorkers, "workers", 0, "Pretokenization workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&trainSpecialsFirst, "specials-first", false, "Place special token ids before merge ids")
	cmd.Flags().StringVar(&trainVocabOut, "vocab-out", "", "Write the vocabulary as GPT-2 style JSON to this path")
	cmd.Flags().StringVar(&trainMergesOut, "merges-out", "", "Write the merge list to this path, one pair per line")
	cmd.Flags().StringVarP(&trainOutput, "output", "o", "text", "Summary format: text, json")
	cmd.Flags().BoolVar(&trainMetrics, "metrics", false, "Show performance metrics")
	cmd.Flags().BoolVarP(&trainVerbose, "verbose", "v", false, "Log training progress to stderr")
	cmd.Flags().IntVar(&trainLogEvery, "log-every", 500, "Log every Nth merge when --verbose is set")

	return cmd
}

func runTrain(_ *cobra.Command, args []string) error {
	corpusPath := args[0]
	startTime := time.Now()

	logger := zerolog.Nop()
	if trainVerbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			With().Timestamp().Logger()
	}
	runID := uuid.NewString()

	var corpusBytes int64
	if fi, err := os.Stat(corpusPath); err == nil {
		corpusBytes = fi.Size()
	}

	logger.Info().
		Str("run_id", runID).
		Str("corpus", corpusPath).
		Str("corpus_size", humanize.Bytes(uint64(corpusBytes))).
		Int("vocab_size", trainVocabSize).
		Strs("special_tokens", trainSpecialTokens).
		Msg("training started")

	opts := []bpe.Option{
		bpe.WithWorkers(trainWorkers),
	}
	if trainSpecialsFirst {
		opts = append(opts, bpe.WithSpecialPlacement(bpe.SpecialsBeforeMerges))
	}
	if trainVerbose {
		every := trainLogEvery
		if every < 1 {
			every = 1
		}
		opts = append(opts, bpe.WithProgress(func(p bpe.Progress) {
			if p.MergesDone%every != 0 {
				return
			}
			logger.Info().
				Str("run_id", runID).
				Int("merges", p.MergesDone).
				Int("vocab", p.VocabSize).
				Str("pair", fmt.Sprintf("%q+%q", p.Pair.First, p.Pair.Second)).
				Int64("count", p.PairCount).
				Msg("merge progress")
		}))
	}

	vocab, merges, err := bpe.Train(corpusPath, trainVocabSize, trainSpecialTokens, opts...)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	trainDuration := time.Since(startTime)

	logger.Info().
		Str("run_id", runID).
		Int("vocab", len(vocab)).
		Int("merges", len(merges)).
		Dur("elapsed", trainDuration).
		Msg("training finished")

	if trainVocabOut != "" {
		if err := writeVocabJSON(trainVocabOut, vocab); err != nil {
			return err
		}
	}
	if trainMergesOut != "" {
		if err := writeMergesText(trainMergesOut, merges); err != nil {
			return err
		}
	}

	switch trainOutput {
	case "json":
		summary := map[string]interface{}{
			"run_id":     runID,
			"corpus":     corpusPath,
			"vocab_size": len(vocab),
			"merges":     len(merges),
		}
		if trainMetrics {
			summary["metrics"] = map[string]interface{}{
				"latency":      formatLatency(trainDuration),
				"merges_per_s": calculateMPS(len(merges), trainDuration),
				"input_bytes":  corpusBytes,
			}
		}
		data, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Println(string(data))
	case "text":
		fmt.Printf("trained %s vocabulary (%s merges) from %s\n",
			humanize.Comma(int64(len(vocab))), humanize.Comma(int64(len(merges))), corpusPath)
		if trainMetrics {
			fmt.Println("metrics:")
			fmt.Printf("  latency: %s\n", formatLatency(trainDuration))
			fmt.Printf("  merges_per_s: %d\n", calculateMPS(len(merges), trainDuration))
			fmt.Printf("  input_bytes: %s\n", humanize.Bytes(uint64(corpusBytes)))
		}
	default:
		return fmt.Errorf("unknown output format: %s", trainOutput)
	}

	return nil
}
