package main

import (
	"errors"
	"flag"

	"github.com/lmthang/bivec/vocab"
	"github.com/sirupsen/logrus"
)

func runVocab(args []string) error {
	var common commonFlags
	var trainPath, outputPath string
	var minCount int64
	var hashSize int
	flags := flag.NewFlagSet(vocabCommand, flag.ExitOnError)
	common.register(flags)
	flags.StringVar(&trainPath, "train", "", "corpus to count")
	flags.StringVar(&outputPath, "output", "", "vocabulary file to write")
	flags.Int64Var(&minCount, "min-count", 5, "discard words seen fewer times")
	flags.IntVar(&hashSize, "hash-size", vocab.DefaultHashSize, "number of hash slots")
	flags.Parse(args)
	common.setup()

	if trainPath == "" || outputPath == "" {
		flags.Usage()
		return errors.New("vocab: -train and -output are required")
	}

	v := vocab.New(hashSize)
	if err := v.LearnFromFile(trainPath); err != nil {
		return err
	}
	v.Finalize(minCount)
	if err := v.WriteFile(outputPath); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"words":       v.Len(),
		"train_words": v.TrainWords,
		"output":      outputPath,
	}).Info("saved vocabulary")
	return nil
}
