// Package phrase finds frequent word pairs in a corpus
// and joins them into single tokens, so that later
// training sees phrases like "new_york" as one word.
package phrase

import (
	"bufio"
	"io"
	"strings"

	"github.com/lmthang/bivec"
	"github.com/lmthang/bivec/vocab"
	"github.com/unixpickle/essentials"
)

// pairSep joins the words of a bigram inside the
// vocabulary.
// Tokens never contain spaces, so bigram keys cannot
// collide with words.
const pairSep = " "

// Options controls phrase detection.
type Options struct {
	// MinCount is the number of occurrences below which
	// words and bigrams are ignored.
	MinCount int64

	// Threshold is the score a bigram must exceed to
	// become a phrase.
	// Higher values yield fewer phrases.
	Threshold float64

	// Separator joins the words of a phrase in the
	// rewritten corpus.
	Separator string

	// HashSize is the number of vocabulary hash slots.
	HashSize int
}

// DefaultOptions returns the usual settings.
func DefaultOptions() Options {
	return Options{
		MinCount:  5,
		Threshold: 100,
		Separator: "_",
		HashSize:  vocab.DefaultHashSize,
	}
}

// A Bigram is a scored word pair.
type Bigram struct {
	First  string
	Second string
	Count  int64
	Score  float64
}

// A Model holds the unigram and bigram counts of a
// corpus.
type Model struct {
	Options Options

	// Vocab counts words and bigrams together.
	// Bigram keys are the two words separated by a space.
	Vocab *vocab.Vocab
}

// Learn counts the words and adjacent word pairs of a
// corpus.
// Pairs never span a sentence boundary.
func Learn(r io.Reader, opts Options) (*Model, error) {
	v := vocab.New(opts.HashSize)
	tokens := bivec.NewTokenReader(r)
	var last string
	for {
		tok, err := tokens.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, essentials.AddCtx("learn phrases", err)
		}
		if tok == bivec.SentenceBoundary {
			last = ""
			continue
		}
		if err := v.Observe(tok); err != nil {
			return nil, essentials.AddCtx("learn phrases", err)
		}
		if last != "" {
			if err := v.Observe(last + pairSep + tok); err != nil {
				return nil, essentials.AddCtx("learn phrases", err)
			}
		}
		last = tok
	}
	v.Finalize(opts.MinCount)
	return &Model{Options: opts, Vocab: v}, nil
}

// Score measures how much more often b follows a than
// chance predicts.
// It is zero if either word or the pair is rare.
func (m *Model) Score(a, b string) float64 {
	pa, ok := m.count(a)
	if !ok {
		return 0
	}
	pb, ok := m.count(b)
	if !ok {
		return 0
	}
	pab, ok := m.count(a + pairSep + b)
	if !ok {
		return 0
	}
	minCount := m.Options.MinCount
	if pa < minCount || pb < minCount {
		return 0
	}
	return float64(pab-minCount) / float64(pa) / float64(pb) * float64(m.Vocab.TrainWords)
}

func (m *Model) count(word string) (int64, bool) {
	idx := m.Vocab.Lookup(word)
	if idx == vocab.NotFound {
		return 0, false
	}
	return m.Vocab.Entries[idx].Count, true
}

// Bigrams lists the pairs that score above the
// threshold, best first.
func (m *Model) Bigrams() []Bigram {
	var res []Bigram
	var scores []float64
	for _, e := range m.Vocab.Entries {
		parts := strings.SplitN(e.Word, pairSep, 2)
		if len(parts) != 2 {
			continue
		}
		score := m.Score(parts[0], parts[1])
		if score <= m.Options.Threshold {
			continue
		}
		res = append(res, Bigram{
			First:  parts[0],
			Second: parts[1],
			Count:  e.Count,
			Score:  score,
		})
		scores = append(scores, score)
	}
	essentials.VoodooSort(scores, func(i, j int) bool {
		return scores[i] > scores[j]
	}, res)
	return res
}

// Apply copies a corpus from r to w, joining each pair
// that scores above the threshold into one token.
//
// A word that ends a phrase cannot also start the next
// one.
// The output has one sentence per line, with words
// separated by single spaces.
func (m *Model) Apply(r io.Reader, w io.Writer) error {
	tokens := bivec.NewTokenReader(r)
	out := bufio.NewWriter(w)
	for {
		words, err := tokens.Sentence()
		if err != nil && err != io.EOF {
			return essentials.AddCtx("apply phrases", err)
		}
		if err == io.EOF && len(words) == 0 {
			break
		}
		if _, err := io.WriteString(out, strings.Join(m.join(words), " ")+"\n"); err != nil {
			return essentials.AddCtx("apply phrases", err)
		}
		if err == io.EOF {
			break
		}
	}
	if err := out.Flush(); err != nil {
		return essentials.AddCtx("apply phrases", err)
	}
	return nil
}

func (m *Model) join(words []string) []string {
	var res []string
	var joined bool
	for i, word := range words {
		if i > 0 && !joined && m.Score(words[i-1], word) > m.Options.Threshold {
			res[len(res)-1] += m.Options.Separator + word
			joined = true
			continue
		}
		res = append(res, word)
		joined = false
	}
	return res
}
