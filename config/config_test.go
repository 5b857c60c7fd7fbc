package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func valid() *Config {
	c := Default()
	c.Dataset.Dir = "/data"
	c.Dataset.Labelled = "/data/labelled.csv"
	return c
}

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, 40, c.Training.Epochs)
	require.Equal(t, 100, c.Training.BatchSize)
	require.Equal(t, 0.001, c.Training.LearningRate)
	require.Equal(t, int64(12345), c.Training.Seed)
	require.Equal(t, "sum", c.Training.Mode)
	require.Equal(t, "tfidf", c.Features.Representation)
	require.Equal(t, PairsDeclared, c.Dataset.Pairs)
	require.Equal(t, "model.csv", c.Output.Model)
	require.Equal(t, "vocabulary.tsv", c.Output.Vocabulary)
	require.NoError(t, valid().Validate())
}

func TestParseOverDefaults(t *testing.T) {
	c, err := Parse([]byte(`
dataset:
  dir: /srv/specs
  labelled: /srv/labelled.csv
  pairs: closure
training:
  epochs: 5
  mode: mean
features:
  representation: bow
  hash_buckets: 4096
`))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	require.Equal(t, "/srv/specs", c.Dataset.Dir)
	require.Equal(t, PairsClosure, c.Dataset.Pairs)
	require.Equal(t, 5, c.Training.Epochs)
	require.Equal(t, 100, c.Training.BatchSize)
	require.Equal(t, "mean", c.Training.Mode)
	require.Equal(t, 4096, c.Features.HashBuckets)
	require.Equal(t, "/srv/specs", c.OutputDir())

	c, err = Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), c)

	_, err = Parse([]byte("training:\n  epoch: 3\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  dir: /out\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "/out", c.OutputDir())

	_, err = Load(path + ".missing")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"no dir":           func(c *Config) { c.Dataset.Dir = "" },
		"no labelled":      func(c *Config) { c.Dataset.Labelled = "" },
		"pairs":            func(c *Config) { c.Dataset.Pairs = "all" },
		"representation":   func(c *Config) { c.Features.Representation = "word2vec" },
		"mode":             func(c *Config) { c.Training.Mode = "median" },
		"epochs":           func(c *Config) { c.Training.Epochs = 0 },
		"batch":            func(c *Config) { c.Training.BatchSize = -1 },
		"learning rate":    func(c *Config) { c.Training.LearningRate = 0 },
		"workers":          func(c *Config) { c.Training.Workers = -2 },
		"negative buckets": func(c *Config) { c.Features.HashBuckets = -1 },
		"model name":       func(c *Config) { c.Output.Model = "" },
	} {
		c := valid()
		mutate(c)
		require.Error(t, c.Validate(), name)
	}
}
