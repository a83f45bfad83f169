// Package config loads training runs from YAML files.
package config

import (
	"bytes"
	"os"

	"github.com/lmthang/bivec/vecio"
	"github.com/lmthang/bivec/word2vec"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Output says where a training run writes its results.
type Output struct {
	// Prefix starts every vector file name.
	Prefix string `yaml:"prefix"`

	// Format is "text", "binary", or "npy".
	Format string `yaml:"format"`

	SaveOutVecs bool `yaml:"save_outvec"`
	SaveSumVecs bool `yaml:"save_sumvec"`

	// Snapshot, if set, is rewritten after every epoch
	// and is loaded to resume training if it exists.
	Snapshot string `yaml:"snapshot"`
}

// File is the contents of a configuration file.
type File struct {
	Train  word2vec.Config `yaml:",inline"`
	Output Output          `yaml:"output"`
}

// Default returns the settings used for keys a file
// leaves out.
func Default() *File {
	return &File{
		Train:  word2vec.DefaultConfig(),
		Output: Output{Format: "text"},
	}
}

// Load reads a configuration file on top of Default.
//
// Unknown keys are rejected.
// A target language without its own sample threshold
// uses the source threshold.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	res, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return res, nil
}

// Parse decodes a configuration on top of Default.
func Parse(data []byte) (*File, error) {
	res := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(res); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if res.Train.Tgt != nil {
		var raw struct {
			Tgt map[string]interface{} `yaml:"tgt"`
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
		if _, ok := raw.Tgt["sample"]; !ok {
			res.Train.Tgt.Sample = res.Train.Src.Sample
		}
	}
	return res, nil
}

// Format parses Output.Format.
func (f *File) Format() (vecio.Format, error) {
	return vecio.ParseFormat(f.Output.Format)
}

// Validate checks both the training and the output
// settings.
func (f *File) Validate() error {
	if err := f.Train.Validate(); err != nil {
		return errors.Wrap(err, "invalid training settings")
	}
	if _, err := f.Format(); err != nil {
		return errors.Wrap(err, "invalid output settings")
	}
	if f.Output.Prefix == "" {
		return errors.New("invalid output settings: no prefix")
	}
	return nil
}
