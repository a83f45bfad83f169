package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/lmthang/bivec/config"
	"github.com/lmthang/bivec/word2vec"
	"github.com/sirupsen/logrus"
)

// trainFlags holds the flags of the train command.
// They override the configuration file when given.
type trainFlags struct {
	configPath string

	srcTrain, srcLang, srcVocab string
	srcTrainWords               int64
	tgtTrain, tgtLang, tgtVocab string
	tgtTrainWords               int64
	tgtSample                   float64
	align                       string

	srcMono, tgtMono     string
	monoSize             int64
	monoWeight           float64
	srcVector, tgtVector string
	vectorFormat         string

	output, format, snapshot string
	saveOutVecs, saveSumVecs bool

	size, window, negative, threads, iter int
	sample, alpha, biWeight               float64
	hs, cbow                              bool
	minCount                              int64
}

func (t *trainFlags) register(flags *flag.FlagSet) {
	d := word2vec.DefaultConfig()
	flags.StringVar(&t.configPath, "config", "", "YAML configuration file")

	flags.StringVar(&t.srcTrain, "src-train", "", "source corpus, one sentence per line")
	flags.StringVar(&t.srcLang, "src-lang", d.Src.Lang, "source language name")
	flags.StringVar(&t.srcVocab, "src-vocab", "", "source vocabulary file to load or save")
	flags.Int64Var(&t.srcTrainWords, "src-train-words", 0,
		"source token count when loading a vocabulary (0 counts the corpus)")
	flags.StringVar(&t.tgtTrain, "tgt-train", "", "target corpus, parallel to the source corpus")
	flags.StringVar(&t.tgtLang, "tgt-lang", "tgt", "target language name")
	flags.StringVar(&t.tgtVocab, "tgt-vocab", "", "target vocabulary file to load or save")
	flags.Int64Var(&t.tgtTrainWords, "tgt-train-words", 0,
		"target token count when loading a vocabulary (0 counts the corpus)")
	flags.Float64Var(&t.tgtSample, "tgt-sample", d.Src.Sample, "target subsampling threshold")
	flags.StringVar(&t.align, "align", "", "word alignments of the sentence pairs")
	flags.StringVar(&t.srcMono, "src-train-mono", "", "extra monolingual source corpus")
	flags.StringVar(&t.tgtMono, "tgt-train-mono", "", "extra monolingual target corpus")
	flags.Int64Var(&t.monoSize, "mono-size", 0,
		"number of lines used from each monolingual corpus (0 uses all)")
	flags.Float64Var(&t.monoWeight, "mono-weight", d.MonoWeight, "weight of monolingual updates")
	flags.StringVar(&t.srcVector, "src-vector", "", "pretrained source vectors to start from")
	flags.StringVar(&t.tgtVector, "tgt-vector", "", "pretrained target vectors to start from")
	flags.StringVar(&t.vectorFormat, "vector-format", "text",
		"format of the pretrained vectors (text, binary, npy)")

	flags.StringVar(&t.output, "output", "", "prefix of the vector files")
	flags.StringVar(&t.format, "format", "text", "vector file format (text, binary, npy)")
	flags.StringVar(&t.snapshot, "snapshot", "", "snapshot file to resume from and update")
	flags.BoolVar(&t.saveOutVecs, "save-outvec", false, "also save negative sampling vectors")
	flags.BoolVar(&t.saveSumVecs, "save-sumvec", false, "also save input plus output vectors")

	flags.IntVar(&t.size, "size", d.Dim, "dimensionality of the vectors")
	flags.IntVar(&t.window, "window", d.Window, "maximum distance to context words")
	flags.Float64Var(&t.sample, "sample", d.Src.Sample, "subsampling threshold (0 disables)")
	flags.BoolVar(&t.hs, "hs", d.HS, "use hierarchical softmax")
	flags.IntVar(&t.negative, "negative", d.Negative, "number of negative samples (0 disables)")
	flags.BoolVar(&t.cbow, "cbow", d.CBOW, "use CBOW instead of skip-gram")
	flags.IntVar(&t.threads, "threads", d.Threads, "number of training threads")
	flags.IntVar(&t.iter, "iter", d.Iters, "number of epochs")
	flags.Int64Var(&t.minCount, "min-count", d.MinCount, "discard words seen fewer times")
	flags.Float64Var(&t.alpha, "alpha", 0, "initial learning rate (0 picks one for the model)")
	flags.Float64Var(&t.biWeight, "bi-weight", d.BiWeight, "weight of cross-lingual updates")
}

// apply copies the flags that were set into f.
func (t *trainFlags) apply(flags *flag.FlagSet, f *config.File) {
	c := &f.Train
	tgt := func() *word2vec.Side {
		if c.Tgt == nil {
			c.Tgt = &word2vec.Side{Lang: t.tgtLang, Sample: c.Src.Sample}
		}
		return c.Tgt
	}
	flags.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "src-train":
			c.Src.TrainFile = t.srcTrain
		case "src-lang":
			c.Src.Lang = t.srcLang
		case "src-vocab":
			c.Src.VocabFile = t.srcVocab
		case "src-train-words":
			c.Src.TrainWords = t.srcTrainWords
		case "sample":
			c.Src.Sample = t.sample
		case "tgt-train":
			tgt().TrainFile = t.tgtTrain
		case "tgt-lang":
			tgt().Lang = t.tgtLang
		case "tgt-vocab":
			tgt().VocabFile = t.tgtVocab
		case "tgt-train-words":
			tgt().TrainWords = t.tgtTrainWords
		case "tgt-sample":
			tgt().Sample = t.tgtSample
		case "align":
			c.AlignFile = t.align
		case "src-train-mono":
			c.Src.MonoFile = t.srcMono
		case "tgt-train-mono":
			tgt().MonoFile = t.tgtMono
		case "mono-weight":
			c.MonoWeight = t.monoWeight
		case "src-vector":
			c.Src.VectorFile = t.srcVector
		case "tgt-vector":
			tgt().VectorFile = t.tgtVector
		case "output":
			f.Output.Prefix = t.output
		case "format":
			f.Output.Format = t.format
		case "snapshot":
			f.Output.Snapshot = t.snapshot
		case "save-outvec":
			f.Output.SaveOutVecs = t.saveOutVecs
		case "save-sumvec":
			f.Output.SaveSumVecs = t.saveSumVecs
		case "size":
			c.Dim = t.size
		case "window":
			c.Window = t.window
		case "hs":
			c.HS = t.hs
		case "negative":
			c.Negative = t.negative
		case "cbow":
			c.CBOW = t.cbow
		case "threads":
			c.Threads = t.threads
		case "iter":
			c.Iters = t.iter
		case "min-count":
			c.MinCount = t.minCount
		case "alpha":
			c.Alpha = t.alpha
		case "bi-weight":
			c.BiWeight = t.biWeight
		}
	})
	if c.Tgt != nil && c.Tgt.Lang == "" {
		c.Tgt.Lang = t.tgtLang
	}

	// These apply to whichever sides have the files they
	// describe, so they wait until every side is known.
	var monoSize, vectorFormat bool
	flags.Visit(func(fl *flag.Flag) {
		monoSize = monoSize || fl.Name == "mono-size"
		vectorFormat = vectorFormat || fl.Name == "vector-format"
	})
	for _, side := range []*word2vec.Side{&c.Src, c.Tgt} {
		if side == nil {
			continue
		}
		if monoSize && side.MonoFile != "" {
			side.MonoSize = t.monoSize
		}
		if vectorFormat && side.VectorFile != "" {
			side.VectorFormat = t.vectorFormat
		}
	}
}

func runTrain(args []string) error {
	var common commonFlags
	var tf trainFlags
	flags := flag.NewFlagSet(trainCommand, flag.ExitOnError)
	common.register(flags)
	tf.register(flags)
	flags.Parse(args)
	common.setup()

	f := config.Default()
	if tf.configPath != "" {
		var err error
		if f, err = config.Load(tf.configPath); err != nil {
			return err
		}
	}
	tf.apply(flags, f)
	if err := f.Validate(); err != nil {
		return err
	}
	format, err := f.Format()
	if err != nil {
		return err
	}

	trainer, err := word2vec.NewTrainer(f.Train)
	if err != nil {
		return err
	}
	if f.Output.Snapshot != "" {
		if _, err := os.Stat(f.Output.Snapshot); err == nil {
			snap, err := word2vec.LoadSnapshot(f.Output.Snapshot)
			if err != nil {
				return err
			}
			if err := trainer.Restore(snap); err != nil {
				return err
			}
			trainer.Log.WithFields(logrus.Fields{
				"file": f.Output.Snapshot,
				"iter": snap.NextIter,
			}).Info("resuming from snapshot")
		}
	}
	if err := trainer.Prepare(); err != nil {
		return err
	}

	save := func() error {
		return trainer.SaveVectors(f.Output.Prefix, format, f.Output.SaveOutVecs,
			f.Output.SaveSumVecs)
	}
	trainer.EpochFunc = func(iter int) error {
		if err := save(); err != nil {
			return err
		}
		if f.Output.Snapshot != "" {
			return trainer.Snapshot(iter + 1).Save(f.Output.Snapshot)
		}
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if trainer.Config.StartIter == trainer.Config.Iters {
		return save()
	}
	return trainer.Train(ctx)
}
