package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/lmthang/bivec/phrase"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/essentials"
)

func runPhrase(args []string) error {
	var common commonFlags
	var trainPath, outputPath, bigramPath string
	opts := phrase.DefaultOptions()
	flags := flag.NewFlagSet(phraseCommand, flag.ExitOnError)
	common.register(flags)
	flags.StringVar(&trainPath, "train", "", "corpus to read")
	flags.StringVar(&outputPath, "output", "", "where to write the rewritten corpus")
	flags.StringVar(&bigramPath, "bigrams", "", "where to list the phrases (default <output>.bigram)")
	flags.Int64Var(&opts.MinCount, "min-count", opts.MinCount, "discard words seen fewer times")
	flags.Float64Var(&opts.Threshold, "threshold", opts.Threshold,
		"score a pair must exceed to form a phrase (higher means fewer phrases)")
	flags.StringVar(&opts.Separator, "sep", opts.Separator, "separator between the words of a phrase")
	flags.IntVar(&opts.HashSize, "hash-size", opts.HashSize, "number of hash slots")
	flags.Parse(args)
	common.setup()

	if trainPath == "" || outputPath == "" {
		flags.Usage()
		return errors.New("phrase: -train and -output are required")
	}
	if bigramPath == "" {
		bigramPath = outputPath + ".bigram"
	}

	in, err := os.Open(trainPath)
	if err != nil {
		return err
	}
	model, err := phrase.Learn(in, opts)
	in.Close()
	if err != nil {
		return err
	}

	bigrams := model.Bigrams()
	if err := writeBigrams(bigramPath, bigrams, opts.Separator); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"entries": model.Vocab.Len(),
		"phrases": len(bigrams),
		"output":  bigramPath,
	}).Info("saved phrases")

	in, err = os.Open(trainPath)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := model.Apply(in, out); err != nil {
		return err
	}
	return out.Close()
}

func writeBigrams(path string, bigrams []phrase.Bigram, sep string) (err error) {
	defer essentials.AddCtxTo("write bigrams", &err)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, b := range bigrams {
		if _, err := fmt.Fprintf(f, "%s%s%s\t%d\t%f\n", b.First, sep, b.Second, b.Count,
			b.Score); err != nil {
			return err
		}
	}
	return f.Close()
}
