package word2vec

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmthang/bivec/corpus"
	"github.com/lmthang/bivec/vecio"
	"github.com/lmthang/bivec/vocab"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/essentials"
	"golang.org/x/sync/errgroup"
)

// A Trainer owns everything needed to train one or two
// LanguageModels: the configuration, the models, the
// shared tables, and the learning rate schedule.
type Trainer struct {
	Config Config

	// Src is the source language model.
	Src *LanguageModel

	// Tgt is the target language model, or nil for
	// monolingual training.
	Tgt *LanguageModel

	// Align splits the alignment file, if there is one.
	Align *corpus.Shards

	// Log receives progress and lifecycle messages.
	Log *logrus.Entry

	// EpochFunc, if non-nil, is called after every epoch
	// with the index of the finished epoch.
	// If it returns an error, training stops.
	EpochFunc func(iter int) error

	// RunID identifies this training run in logs.
	RunID string

	sigmoid  SigmoidTable
	schedule *Schedule
}

// NewTrainer validates the configuration and creates a
// Trainer.
//
// Models are built by Prepare, unless Src (and Tgt) are
// assigned beforehand, for example from a Snapshot.
func NewTrainer(c Config) (*Trainer, error) {
	if err := c.Validate(); err != nil {
		return nil, essentials.AddCtx("create trainer", err)
	}
	runID := uuid.New().String()
	return &Trainer{
		Config:   c,
		Log:      logrus.WithField("run", runID),
		RunID:    runID,
		sigmoid:  NewSigmoidTable(),
		schedule: NewSchedule(c.StartAlpha(), c.Iters, c.BiWeight),
	}, nil
}

// Schedule returns the learning rate schedule.
func (t *Trainer) Schedule() *Schedule {
	return t.schedule
}

// Models returns the source model, followed by the
// target model for bilingual training.
func (t *Trainer) Models() []*LanguageModel {
	if t.Tgt != nil {
		return []*LanguageModel{t.Src, t.Tgt}
	}
	return []*LanguageModel{t.Src}
}

// Prepare builds the vocabularies and models (unless
// they are already set), then the Huffman codes, unigram
// tables, and corpus shards.
func (t *Trainer) Prepare() (err error) {
	defer essentials.AddCtxTo("prepare", &err)
	if t.Src == nil {
		if t.Src, err = t.buildModel(t.Config.Src); err != nil {
			return err
		}
	}
	if t.Config.Bilingual() && t.Tgt == nil {
		if t.Tgt, err = t.buildModel(*t.Config.Tgt); err != nil {
			return err
		}
	}
	if err := t.attach(t.Src, t.Config.Src); err != nil {
		return err
	}
	if !t.Config.Bilingual() {
		return nil
	}
	if err := t.attach(t.Tgt, *t.Config.Tgt); err != nil {
		return err
	}
	parallel := []*corpus.Shards{t.Src.Shards, t.Tgt.Shards}
	if t.Config.AlignFile != "" {
		t.Align, err = corpus.ComputeShards(t.Config.AlignFile, t.Config.Threads)
		if err != nil {
			return err
		}
		parallel = append(parallel, t.Align)
	}
	return corpus.CheckParallel(parallel...)
}

func (t *Trainer) buildModel(side Side) (*LanguageModel, error) {
	v, err := t.loadVocab(side)
	if err != nil {
		return nil, err
	}
	l := NewLanguageModel(side.Lang, v, t.Config.Dim, t.Config.HS, t.Config.Negative > 0)
	if side.VectorFile != "" {
		if err := t.loadVectors(l, side); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (t *Trainer) loadVectors(l *LanguageModel, side Side) error {
	format, err := side.vectorFormat()
	if err != nil {
		return err
	}
	vecs, err := vecio.ReadFile(side.VectorFile, format)
	if err != nil {
		return err
	}
	n, err := l.InitVectors(vecs)
	if err != nil {
		return essentials.AddCtx(side.VectorFile, err)
	}
	t.Log.WithFields(logrus.Fields{
		"lang":  side.Lang,
		"file":  side.VectorFile,
		"words": n,
	}).Info("loaded initial vectors")
	return nil
}

// withMono calls f with the part of the mono corpus that
// is trained on.
func withMono(side Side, f func(r io.Reader) error) error {
	s, err := corpus.ComputeShardsLimit(side.MonoFile, 1, side.MonoSize)
	if err != nil {
		return err
	}
	file, err := os.Open(side.MonoFile)
	if err != nil {
		return err
	}
	defer file.Close()
	return f(s.Section(file, 0))
}

func (t *Trainer) loadVocab(side Side) (*vocab.Vocab, error) {
	log := t.Log.WithField("lang", side.Lang)
	if side.VocabFile != "" {
		if _, err := os.Stat(side.VocabFile); err == nil {
			v, err := vocab.ReadFile(side.VocabFile, t.Config.HashSize)
			if err != nil {
				return nil, err
			}
			v.Finalize(t.Config.MinCount)
			if side.TrainWords > 0 {
				v.TrainWords = side.TrainWords
			} else if v.TrainWords, err = vocab.CountWords(side.TrainFile); err != nil {
				return nil, err
			} else if side.MonoFile != "" {
				err := withMono(side, func(r io.Reader) error {
					n, err := vocab.CountTokens(r)
					v.TrainWords += n
					return err
				})
				if err != nil {
					return nil, err
				}
			}
			log.WithFields(logrus.Fields{
				"file":        side.VocabFile,
				"words":       v.Len(),
				"train_words": v.TrainWords,
			}).Info("loaded vocabulary")
			return v, nil
		}
	}

	v := vocab.New(t.Config.HashSize)
	if err := v.LearnFromFile(side.TrainFile); err != nil {
		return nil, err
	}
	if side.MonoFile != "" {
		if err := withMono(side, v.LearnFrom); err != nil {
			return nil, err
		}
	}
	v.Finalize(t.Config.MinCount)
	log.WithFields(logrus.Fields{
		"file":        side.TrainFile,
		"words":       v.Len(),
		"train_words": v.TrainWords,
		"file_size":   v.FileSize,
	}).Info("learned vocabulary")
	if side.VocabFile != "" {
		if err := v.WriteFile(side.VocabFile); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// attach computes the structures derived from a model's
// vocabulary and corpus.
func (t *Trainer) attach(l *LanguageModel, side Side) error {
	if l.Dim != t.Config.Dim {
		return errors.New("model dimension does not match configuration")
	}
	l.Sample = side.Sample
	if t.Config.HS {
		if err := l.Vocab.BuildHuffman(); err != nil {
			return err
		}
		if l.Syn1 == nil {
			return errors.New("model has no hierarchical softmax vectors")
		}
	}
	if t.Config.Negative > 0 {
		if l.Vocab.Len() < 2 {
			return vocab.ErrTooSmall
		}
		if l.Syn1Neg == nil {
			return errors.New("model has no negative sampling vectors")
		}
		l.Table = NewUnigramTable(l.Vocab, t.Config.TableSize)
	}
	var err error
	l.Shards, err = corpus.ComputeShards(side.TrainFile, t.Config.Threads)
	if err != nil {
		return err
	}
	if side.MonoFile != "" {
		l.MonoShards, err = corpus.ComputeShardsLimit(side.MonoFile, t.Config.Threads,
			side.MonoSize)
		if err != nil {
			return err
		}
		t.Log.WithFields(logrus.Fields{
			"lang":  l.Lang,
			"lines": l.MonoShards.Lines,
		}).Debug("computed mono shards")
	}
	vocabSizeGauge.WithLabelValues(l.Lang).Set(float64(l.Vocab.Len()))
	t.Log.WithFields(logrus.Fields{
		"lang":  l.Lang,
		"lines": l.Shards.Lines,
	}).Debug("computed shards")
	return nil
}

// Train runs the epochs from Config.StartIter up to
// Config.Iters.
//
// Each epoch starts one worker per thread and waits for
// all of them before the next epoch begins.
// The context is checked between epochs.
func (t *Trainer) Train(ctx context.Context) error {
	if t.Src == nil || t.Src.Shards == nil {
		return errors.New("train: trainer is not prepared")
	}
	for iter := t.Config.StartIter; iter < t.Config.Iters; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t.schedule.Update(iter, t.Src.Vocab.TrainWords, 0)
		for _, l := range t.Models() {
			l.wordCountActual.Store(0)
		}
		log := t.Log.WithField("iter", iter)
		log.WithField("alpha", t.schedule.Alpha()).Info("starting epoch")

		start := time.Now()
		var g errgroup.Group
		for id := 0; id < t.Config.Threads; id++ {
			w := newWorker(t, id, iter, start)
			g.Go(w.run)
		}
		if err := g.Wait(); err != nil {
			return essentials.AddCtx("train", err)
		}

		epochsGauge.Set(float64(iter + 1))
		log.WithFields(logrus.Fields{
			"alpha":   t.schedule.Alpha(),
			"elapsed": time.Since(start).String(),
		}).Info("finished epoch")
		for _, l := range t.Models() {
			for name, s := range l.Stats() {
				log.WithFields(logrus.Fields{
					"lang":   l.Lang,
					"matrix": name,
					"min":    s.Min,
					"max":    s.Max,
					"mean":   s.Mean,
				}).Debug("matrix statistics")
			}
		}
		if t.EpochFunc != nil {
			if err := t.EpochFunc(iter); err != nil {
				return err
			}
		}
	}
	return nil
}

// windowBounds returns the first and last positions of
// the window around pos, shrunk by b, in a sentence of n
// words.
func (t *Trainer) windowBounds(pos, b, n int) (lo, hi int) {
	lo = pos - t.Config.Window + b
	hi = pos + t.Config.Window - b
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return
}
