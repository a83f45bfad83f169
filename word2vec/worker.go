package word2vec

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/lmthang/bivec"
	"github.com/lmthang/bivec/corpus"
	"github.com/lmthang/bivec/vocab"
	"github.com/sirupsen/logrus"
)

// progressInterval is the number of words a worker reads
// between learning rate updates.
const progressInterval = 10000

// maxResample bounds the draws spent replacing a negative
// sample that hit the true word.
const maxResample = 10

// A sentence is a worker's view of one language: its
// reader, the current sentence, and the word counters.
type sentence struct {
	lm     *LanguageModel
	tokens *bivec.TokenReader
	eof    bool

	// words holds the vocabulary indices that survived
	// subsampling.
	words []int32

	// idMap maps each position of the original sentence
	// to an index in words, or -1 if the token was
	// unknown or subsampled away.
	idMap []int

	wordCount     int64
	lastWordCount int64
}

// read loads the next sentence.
// It returns false once the shard holds no more tokens.
//
// Only the first maxLen tokens of a long sentence are
// used; the rest of the line is still consumed.
func (s *sentence) read(rng *Rand, maxLen int) (bool, error) {
	s.words = s.words[:0]
	s.idMap = s.idMap[:0]
	if s.eof {
		return false, nil
	}
	var sawToken bool
	for {
		tok, err := s.tokens.Next()
		if err == io.EOF {
			s.eof = true
			return sawToken, nil
		} else if err != nil {
			return false, err
		}
		sawToken = true
		idx := s.lm.Vocab.Lookup(tok)
		if idx == 0 {
			return true, nil
		}
		if len(s.idMap) >= maxLen {
			continue
		}
		if idx == vocab.NotFound {
			s.idMap = append(s.idMap, -1)
			continue
		}
		s.wordCount++
		if s.lm.Sample > 0 && s.lm.KeepProbability(idx) < rng.Uniform() {
			s.idMap = append(s.idMap, -1)
			continue
		}
		s.idMap = append(s.idMap, len(s.words))
		s.words = append(s.words, int32(idx))
	}
}

// flush adds the words read since the last flush to the
// shared counter.
func (s *sentence) flush() {
	delta := s.wordCount - s.lastWordCount
	if delta == 0 {
		return
	}
	s.lm.wordCountActual.Add(delta)
	wordsProcessedCounter.WithLabelValues(s.lm.Lang).Add(float64(delta))
	s.lastWordCount = s.wordCount
}

type worker struct {
	t     *Trainer
	id    int
	iter  int
	start time.Time
	rng   Rand

	// neu1 is the CBOW hidden vector; neu1e accumulates
	// the error of the hidden (or input) vector.
	neu1  []float32
	neu1e []float32

	src   *sentence
	tgt   *sentence
	align *bufio.Reader
}

func newWorker(t *Trainer, id, iter int, start time.Time) *worker {
	return &worker{
		t:     t,
		id:    id,
		iter:  iter,
		start: start,
		rng:   Rand(id),
		neu1:  make([]float32, t.Config.Dim),
		neu1e: make([]float32, t.Config.Dim),
	}
}

// run trains on the worker's shard until the shard ends
// or the worker has read its share of the source words.
func (w *worker) run() error {
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	open := func(s *corpus.Shards) (*io.SectionReader, error) {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, err
		}
		closers = append(closers, f)
		return s.Section(f, w.id), nil
	}

	t := w.t
	r, err := open(t.Src.Shards)
	if err != nil {
		return err
	}
	w.src = &sentence{lm: t.Src, tokens: bivec.NewTokenReader(r)}
	if t.Tgt != nil {
		r, err := open(t.Tgt.Shards)
		if err != nil {
			return err
		}
		w.tgt = &sentence{lm: t.Tgt, tokens: bivec.NewTokenReader(r)}
	}
	if t.Align != nil {
		r, err := open(t.Align)
		if err != nil {
			return err
		}
		w.align = bufio.NewReader(r)
	}

	srcQuota := t.Src.Vocab.TrainWords / int64(t.Config.Threads)
	var tgtQuota int64
	if t.Tgt != nil {
		tgtQuota = t.Tgt.Vocab.TrainWords / int64(t.Config.Threads)
	}
	for {
		if w.src.wordCount-w.src.lastWordCount > progressInterval {
			w.updateProgress()
		}
		ok, err := w.src.read(&w.rng, t.Config.MaxSentenceLen)
		if err != nil {
			return err
		} else if !ok {
			break
		}
		w.trainSentence(w.src)

		if w.tgt != nil {
			ok, err := w.tgt.read(&w.rng, t.Config.MaxSentenceLen)
			if err != nil {
				return err
			} else if !ok {
				break
			}
			w.trainSentence(w.tgt)
			if err := w.trainAligned(); err != nil {
				return err
			}
			if w.tgt.wordCount > tgtQuota {
				break
			}
		}
		if w.src.wordCount > srcQuota {
			break
		}
	}
	for _, l := range t.Models() {
		if l.MonoShards == nil {
			continue
		}
		r, err := open(l.MonoShards)
		if err != nil {
			return err
		}
		mono := &sentence{lm: l, tokens: bivec.NewTokenReader(r)}
		if err := w.trainMono(mono); err != nil {
			return err
		}
	}
	w.updateProgress()
	return nil
}

// trainMono trains on a section of a mono corpus until
// the section ends.
func (w *worker) trainMono(s *sentence) error {
	defer s.flush()
	for {
		if s.wordCount-s.lastWordCount > progressInterval {
			s.flush()
			w.updateProgress()
		}
		ok, err := s.read(&w.rng, w.t.Config.MaxSentenceLen)
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
		w.trainSentence(s)
	}
}

func (w *worker) updateProgress() {
	w.src.flush()
	if w.tgt != nil {
		w.tgt.flush()
	}
	t := w.t
	trainWords := t.Src.Vocab.TrainWords
	actual := t.Src.wordCountActual.Load()
	alpha := t.schedule.Update(w.iter, trainWords, actual)
	if !t.Log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	elapsed := time.Since(w.start).Seconds() + 1e-6
	fields := logrus.Fields{
		"alpha":    alpha,
		"progress": float64(actual) / float64(trainWords+1) * 100,
		"kwords_per_thread_sec": float64(actual) / elapsed / 1000 /
			float64(t.Config.Threads),
	}
	if t.Tgt != nil {
		fields["bi_alpha"] = t.schedule.BiAlpha()
	}
	t.Log.WithFields(fields).Debug("progress")
}

// trainSentence applies the monolingual updates for every
// word of a sentence.
func (w *worker) trainSentence(s *sentence) {
	alpha := float32(w.t.schedule.Alpha() * w.t.Config.MonoWeight)
	window := w.t.Config.Window
	for pos, word := range s.words {
		b := w.rng.Intn(window)
		if w.t.Config.CBOW {
			w.cbow(s.lm, s.words, pos, b, s.lm, word, alpha)
			continue
		}
		lo, hi := w.t.windowBounds(pos, b, len(s.words))
		for c := lo; c <= hi; c++ {
			if c != pos {
				w.skipPair(s.lm, s.words[c], s.lm, word, alpha)
			}
		}
	}
}

// trainAligned applies the cross-lingual updates for the
// current sentence pair.
func (w *worker) trainAligned() error {
	srcLen, tgtLen := len(w.src.idMap), len(w.tgt.idMap)
	var alignMap []int
	if w.align != nil {
		line, err := w.align.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		alignMap = corpus.AlignMap(corpus.ParseAlignment(line), srcLen, tgtLen)
	} else {
		alignMap = corpus.UniformMap(srcLen, tgtLen)
	}

	// CBOW predictions across languages use the
	// monolingual rate.
	alpha := float32(w.t.schedule.BiAlpha())
	if w.t.Config.CBOW {
		alpha = float32(w.t.schedule.Alpha())
	}
	for srcPos, tgtPos := range alignMap {
		if tgtPos < 0 {
			continue
		}
		srcIdx, tgtIdx := w.src.idMap[srcPos], w.tgt.idMap[tgtPos]
		if srcIdx < 0 || tgtIdx < 0 {
			continue
		}
		w.alignPair(w.src, srcIdx, w.tgt, tgtIdx, alpha)
		w.alignPair(w.tgt, tgtIdx, w.src, srcIdx, alpha)
	}
	return nil
}
