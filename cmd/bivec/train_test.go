package main

import (
	"flag"
	"testing"

	"github.com/lmthang/bivec/config"
)

func parseTrainFlags(t *testing.T, f *config.File, args ...string) {
	var tf trainFlags
	flags := flag.NewFlagSet(trainCommand, flag.ContinueOnError)
	tf.register(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatal(err)
	}
	tf.apply(flags, f)
}

func TestTrainFlagsOverride(t *testing.T) {
	f, err := config.Parse([]byte("src: {train: a.txt}\nsize: 50\nwindow: 8\n"))
	if err != nil {
		t.Fatal(err)
	}
	parseTrainFlags(t, f, "-size", "20", "-tgt-train", "b.txt", "-tgt-lang", "de",
		"-output", "vec", "-hs")

	c := f.Train
	if c.Dim != 20 {
		t.Errorf("expected size 20 but got %d", c.Dim)
	}
	if c.Window != 8 {
		t.Errorf("unset flag replaced file value: window %d", c.Window)
	}
	if c.Tgt == nil || c.Tgt.TrainFile != "b.txt" || c.Tgt.Lang != "de" {
		t.Fatalf("unexpected target side: %+v", c.Tgt)
	}
	if c.Tgt.Sample != c.Src.Sample {
		t.Errorf("expected target sample %f but got %f", c.Src.Sample, c.Tgt.Sample)
	}
	if !c.HS || f.Output.Prefix != "vec" {
		t.Errorf("flags not applied: hs=%v prefix=%s", c.HS, f.Output.Prefix)
	}
	if err := f.Validate(); err != nil {
		t.Error(err)
	}
}

func TestTrainFlagsMonolingual(t *testing.T) {
	f := config.Default()
	parseTrainFlags(t, f, "-src-train", "a.txt", "-sample", "0", "-output", "vec")
	if f.Train.Bilingual() {
		t.Error("unexpected target side")
	}
	if f.Train.Src.Sample != 0 || f.Train.Src.TrainFile != "a.txt" {
		t.Errorf("unexpected source side: %+v", f.Train.Src)
	}
}

func TestTrainFlagsMono(t *testing.T) {
	f := config.Default()
	parseTrainFlags(t, f, "-src-train", "a.txt", "-tgt-train", "b.txt",
		"-src-train-mono", "news.en", "-mono-size", "500", "-mono-weight", "0.3",
		"-tgt-vector", "init.de", "-vector-format", "binary", "-output", "vec")

	c := f.Train
	if c.Src.MonoFile != "news.en" || c.Src.MonoSize != 500 {
		t.Errorf("unexpected source side: %+v", c.Src)
	}
	if c.Tgt == nil || c.Tgt.MonoSize != 0 || c.Tgt.VectorFile != "init.de" ||
		c.Tgt.VectorFormat != "binary" {
		t.Fatalf("unexpected target side: %+v", c.Tgt)
	}
	if c.Src.VectorFormat != "" {
		t.Errorf("unexpected source vector format %q", c.Src.VectorFormat)
	}
	if c.MonoWeight != 0.3 {
		t.Errorf("expected mono weight 0.3 but got %f", c.MonoWeight)
	}
	if err := f.Validate(); err != nil {
		t.Error(err)
	}
}
