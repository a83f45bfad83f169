package word2vec

import (
	"errors"
	"fmt"

	"github.com/lmthang/bivec/vecio"
	"github.com/lmthang/bivec/vocab"
)

// ErrNoObjective is returned for configurations which
// enable neither hierarchical softmax nor negative
// sampling.
var ErrNoObjective = errors.New("no training objective: enable hs or negative sampling")

// DefaultMaxSentenceLen is the default number of tokens
// kept per sentence.
const DefaultMaxSentenceLen = 1000

// Side describes the corpus of one language.
type Side struct {
	// Lang names the language, for logs and output files.
	Lang string `yaml:"lang"`

	// TrainFile is the tokenized corpus, one sentence per
	// line.
	TrainFile string `yaml:"train"`

	// VocabFile, if set, is loaded instead of learning
	// the vocabulary when it exists, and is written
	// after learning when it does not.
	VocabFile string `yaml:"vocab"`

	// Sample is the subsampling threshold.
	// Zero disables subsampling.
	Sample float64 `yaml:"sample"`

	// TrainWords, if positive, is the number of tokens
	// per epoch when the vocabulary comes from VocabFile.
	// Otherwise the corpus is counted.
	TrainWords int64 `yaml:"train_words"`

	// MonoFile is an optional monolingual corpus of the
	// same language, mixed into every epoch.
	// It contributes to the vocabulary and receives only
	// monolingual updates.
	MonoFile string `yaml:"mono"`

	// MonoSize, if positive, limits MonoFile to its first
	// MonoSize lines.
	MonoSize int64 `yaml:"mono_size"`

	// VectorFile holds pretrained vectors that replace the
	// random initial input vectors of the words it shares
	// with the vocabulary.
	VectorFile string `yaml:"vectors"`

	// VectorFormat is the format of VectorFile.
	// It defaults to text.
	VectorFormat string `yaml:"vectors_format"`
}

func (s *Side) vectorFormat() (vecio.Format, error) {
	if s.VectorFormat == "" {
		return vecio.Text, nil
	}
	return vecio.ParseFormat(s.VectorFormat)
}

func (s *Side) validate() error {
	switch {
	case s.Sample < 0:
		return errors.New("invalid subsampling threshold")
	case s.MonoSize < 0:
		return fmt.Errorf("invalid mono corpus size: %d", s.MonoSize)
	case s.MonoSize > 0 && s.MonoFile == "":
		return errors.New("mono corpus size without a mono corpus")
	}
	if s.VectorFile != "" {
		if _, err := s.vectorFormat(); err != nil {
			return err
		}
	}
	return nil
}

// Config configures a Trainer.
type Config struct {
	Src Side  `yaml:"src"`
	Tgt *Side `yaml:"tgt"`

	// AlignFile holds word alignments for the sentence
	// pairs of a bilingual corpus.
	// Without it, positions are aligned uniformly.
	AlignFile string `yaml:"align"`

	Dim      int   `yaml:"size"`
	Window   int   `yaml:"window"`
	HS       bool  `yaml:"hs"`
	Negative int   `yaml:"negative"`
	CBOW     bool  `yaml:"cbow"`
	Threads  int   `yaml:"threads"`
	MinCount int64 `yaml:"min_count"`

	// Alpha is the initial learning rate.
	// If zero, 0.05 is used for CBOW and 0.025 for
	// skip-gram.
	Alpha float64 `yaml:"alpha"`

	Iters     int `yaml:"iter"`
	StartIter int `yaml:"start_iter"`

	// BiWeight scales the learning rate of cross-lingual
	// updates.
	BiWeight float64 `yaml:"bi_weight"`

	// MonoWeight scales the learning rate of monolingual
	// updates, on both the parallel and mono corpora.
	MonoWeight float64 `yaml:"mono_weight"`

	TableSize      int `yaml:"table_size"`
	HashSize       int `yaml:"hash_size"`
	MaxSentenceLen int `yaml:"max_sentence_len"`
}

// DefaultConfig returns the default settings, with no
// corpus configured.
func DefaultConfig() Config {
	return Config{
		Src:            Side{Lang: "src", Sample: 1e-3},
		Dim:            100,
		Window:         5,
		Negative:       5,
		CBOW:           true,
		Threads:        12,
		MinCount:       5,
		Iters:          1,
		BiWeight:       1,
		MonoWeight:     1,
		TableSize:      DefaultTableSize,
		HashSize:       vocab.DefaultHashSize,
		MaxSentenceLen: DefaultMaxSentenceLen,
	}
}

// Bilingual reports whether a target language is set.
func (c *Config) Bilingual() bool {
	return c.Tgt != nil
}

// StartAlpha returns the initial learning rate.
func (c *Config) StartAlpha() float64 {
	if c.Alpha > 0 {
		return c.Alpha
	}
	if c.CBOW {
		return 0.05
	}
	return 0.025
}

// Validate checks the configuration for settings that
// cannot be trained.
func (c *Config) Validate() error {
	switch {
	case c.Src.TrainFile == "":
		return errors.New("no source training file")
	case c.Tgt != nil && c.Tgt.TrainFile == "":
		return errors.New("no target training file")
	case c.AlignFile != "" && c.Tgt == nil:
		return errors.New("alignment file requires a target language")
	case !c.HS && c.Negative == 0:
		return ErrNoObjective
	case c.Negative < 0:
		return fmt.Errorf("invalid negative sample count: %d", c.Negative)
	case c.Dim < 1:
		return fmt.Errorf("invalid dimension: %d", c.Dim)
	case c.Window < 1:
		return fmt.Errorf("invalid window: %d", c.Window)
	case c.Threads < 1:
		return fmt.Errorf("invalid thread count: %d", c.Threads)
	case c.Iters < 1:
		return fmt.Errorf("invalid iteration count: %d", c.Iters)
	case c.StartIter < 0 || c.StartIter > c.Iters:
		return fmt.Errorf("invalid start iteration: %d", c.StartIter)
	case c.Alpha < 0:
		return fmt.Errorf("invalid learning rate: %f", c.Alpha)
	case c.BiWeight < 0:
		return fmt.Errorf("invalid bilingual weight: %f", c.BiWeight)
	case c.MonoWeight < 0:
		return fmt.Errorf("invalid monolingual weight: %f", c.MonoWeight)
	case c.Negative > 0 && c.TableSize < 1:
		return fmt.Errorf("invalid table size: %d", c.TableSize)
	case c.MaxSentenceLen < 1:
		return fmt.Errorf("invalid maximum sentence length: %d", c.MaxSentenceLen)
	}
	if err := c.Src.validate(); err != nil {
		return err
	}
	if c.Tgt != nil {
		return c.Tgt.validate()
	}
	return nil
}
