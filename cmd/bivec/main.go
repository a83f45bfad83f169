// Command bivec learns vocabularies and phrases and
// trains monolingual or bilingual word vectors.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	vocabCommand   = "vocab"
	trainCommand   = "train"
	phraseCommand  = "phrase"
	nearestCommand = "nearest"
)

var commands = map[string]func(args []string) error{
	vocabCommand:   runVocab,
	trainCommand:   runTrain,
	phraseCommand:  runPhrase,
	nearestCommand: runNearest,
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		usage()
		os.Exit(1)
	}
	if err := run(os.Args[2:]); err != nil {
		logrus.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bivec [command] [options]\n"+
		"Commands: %s, %s, %s, %s\n"+
		"Run bivec [command] -h for the options of a command.\n",
		vocabCommand, trainCommand, phraseCommand, nearestCommand)
}

// commonFlags are shared by every command.
type commonFlags struct {
	debug       int
	metricsAddr string
}

func (c *commonFlags) register(flags *flag.FlagSet) {
	flags.IntVar(&c.debug, "debug", 1, "verbosity (0 = warnings only, 1 = info, 2 = progress)")
	flags.StringVar(&c.metricsAddr, "metrics-addr", "",
		"address to serve prometheus metrics on, such as :9090")
}

// setup configures logging and starts the metrics server.
func (c *commonFlags) setup() {
	switch {
	case c.debug <= 0:
		logrus.SetLevel(logrus.WarnLevel)
	case c.debug == 1:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.DebugLevel)
	}
	if c.metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logrus.WithField("addr", c.metricsAddr).Info("serving metrics")
			logrus.Fatal(http.ListenAndServe(c.metricsAddr, mux))
		}()
	}
}
