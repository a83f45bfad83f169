package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lmthang/bivec/vecio"
	"github.com/lmthang/bivec/word2vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bilingualYAML = `
src:
  lang: en
  train: data/train.en
  vocab: data/vocab.en
tgt:
  lang: de
  train: data/train.de
align: data/train.align
size: 40
window: 10
hs: true
negative: 0
cbow: false
threads: 4
iter: 3
bi_weight: 0.5
output:
  prefix: out/model
  format: binary
  snapshot: out/snapshot
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(bilingualYAML))
	require.NoError(t, err)

	c := f.Train
	assert.Equal(t, "en", c.Src.Lang)
	assert.Equal(t, "data/vocab.en", c.Src.VocabFile)
	require.NotNil(t, c.Tgt)
	assert.Equal(t, "data/train.de", c.Tgt.TrainFile)
	assert.Equal(t, "data/train.align", c.AlignFile)
	assert.Equal(t, 40, c.Dim)
	assert.Equal(t, 10, c.Window)
	assert.True(t, c.HS)
	assert.Equal(t, 0, c.Negative)
	assert.False(t, c.CBOW)
	assert.Equal(t, 3, c.Iters)
	assert.Equal(t, 0.5, c.BiWeight)

	defaults := word2vec.DefaultConfig()
	assert.Equal(t, defaults.Src.Sample, c.Src.Sample)
	assert.Equal(t, defaults.Src.Sample, c.Tgt.Sample)
	assert.Equal(t, defaults.MinCount, c.MinCount)
	assert.Equal(t, defaults.MaxSentenceLen, c.MaxSentenceLen)

	format, err := f.Format()
	require.NoError(t, err)
	assert.Equal(t, vecio.Binary, format)
	assert.Equal(t, "out/snapshot", f.Output.Snapshot)
	assert.NoError(t, f.Validate())
}

func TestParseTargetSample(t *testing.T) {
	f, err := Parse([]byte("src: {train: a, sample: 0.01}\ntgt: {train: b, sample: 0}\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.01, f.Train.Src.Sample)
	assert.Equal(t, 0.0, f.Train.Tgt.Sample)
	assert.Equal(t, "src", f.Train.Src.Lang)
}

func TestParseMonolingual(t *testing.T) {
	f, err := Parse([]byte("src: {train: a}\noutput: {prefix: vec}\n"))
	require.NoError(t, err)
	assert.Nil(t, f.Train.Tgt)
	assert.False(t, f.Train.Bilingual())
	assert.NoError(t, f.Validate())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("dimension: 10\n"))
	assert.Error(t, err, "unknown keys should be rejected")

	_, err = Parse([]byte("size: [1, 2]\n"))
	assert.Error(t, err)

	f, err := Parse([]byte("src: {train: a}\noutput: {prefix: vec, format: csv}\n"))
	require.NoError(t, err)
	assert.Error(t, f.Validate())

	f, err = Parse([]byte("src: {train: a}\nhs: false\nnegative: 0\noutput: {prefix: vec}\n"))
	require.NoError(t, err)
	assert.Error(t, f.Validate())

	f, err = Parse([]byte("src: {train: a}\n"))
	require.NoError(t, err)
	assert.Error(t, f.Validate(), "prefix is required")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bivec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bilingualYAML), 0644))
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out/model", f.Output.Prefix)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseMono(t *testing.T) {
	f, err := Parse([]byte(`
src:
  train: data/train.en
  mono: data/news.en
  mono_size: 1000
  vectors: data/init.en
  vectors_format: binary
mono_weight: 0.5
output:
  prefix: out/model
`))
	require.NoError(t, err)
	c := f.Train
	assert.Equal(t, "data/news.en", c.Src.MonoFile)
	assert.Equal(t, int64(1000), c.Src.MonoSize)
	assert.Equal(t, "data/init.en", c.Src.VectorFile)
	assert.Equal(t, "binary", c.Src.VectorFormat)
	assert.Equal(t, 0.5, c.MonoWeight)
	assert.NoError(t, f.Validate())

	f, err = Parse([]byte("src:\n  train: a\noutput:\n  prefix: b\n"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.Train.MonoWeight)
}

func TestValidateMono(t *testing.T) {
	for _, mutate := range []func(c *word2vec.Config){
		func(c *word2vec.Config) { c.MonoWeight = -1 },
		func(c *word2vec.Config) { c.Src.MonoSize = 10 },
		func(c *word2vec.Config) { c.Src.MonoFile = "m"; c.Src.MonoSize = -1 },
		func(c *word2vec.Config) { c.Src.VectorFile = "v"; c.Src.VectorFormat = "xml" },
	} {
		f := Default()
		f.Train.Src.TrainFile = "train.txt"
		f.Output.Prefix = "out"
		mutate(&f.Train)
		assert.Error(t, f.Validate())
	}
}
