package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lmthang/bivec/vecio"
	"github.com/lmthang/bivec/word2vec"
)

func runNearest(args []string) error {
	var common commonFlags
	var vectorPath, formatName string
	var n int
	flags := flag.NewFlagSet(nearestCommand, flag.ExitOnError)
	common.register(flags)
	flags.StringVar(&vectorPath, "vectors", "", "vector file to search")
	flags.StringVar(&formatName, "format", "text", "vector file format (text, binary, npy)")
	flags.IntVar(&n, "n", 10, "number of neighbors to print")
	flags.Parse(args)
	common.setup()

	if vectorPath == "" {
		flags.Usage()
		return errors.New("nearest: -vectors is required")
	}
	format, err := vecio.ParseFormat(formatName)
	if err != nil {
		return err
	}
	vecs, err := vecio.ReadFile(vectorPath, format)
	if err != nil {
		return err
	}
	embedding := word2vec.NewEmbedding(vecs.Words, vecs.Dim, vecs.Data)

	query := func(word string) {
		words, sims := embedding.Nearest(word, n)
		if words == nil {
			fmt.Printf("%s: unknown word\n", word)
			return
		}
		fmt.Printf("%s:\n", word)
		for i, w := range words {
			fmt.Printf("  %-20s %f\n", w, sims[i])
		}
	}

	if flags.NArg() > 0 {
		for _, word := range flags.Args() {
			query(word)
		}
		return nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			query(word)
		}
	}
	return scanner.Err()
}
