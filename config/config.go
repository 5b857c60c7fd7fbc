// Package config holds the settings of a training run.
//
// A YAML file is decoded over Default, so it only needs the keys that
// change. Command line flags are applied on top by the caller.
package config

import "bytes"
import "os"

import "github.com/pkg/errors"
import "gopkg.in/yaml.v3"

import "github.com/neurlang/specmatch/features"
import "github.com/neurlang/specmatch/logreg"
import "github.com/neurlang/specmatch/trainer"

// Pair sources
const (
	// PairsDeclared trains on the labelled declarations as ingested.
	PairsDeclared = "declared"
	// PairsClosure trains on every pair inside a cluster plus the DIFFER
	// declarations.
	PairsClosure = "closure"
)

// DefaultVocabularyFile is written next to the model.
const DefaultVocabularyFile = "vocabulary.tsv"

type Dataset struct {
	Dir       string `yaml:"dir" json:"dir"`
	Labelled  string `yaml:"labelled" json:"labelled"`
	StopWords string `yaml:"stop_words" json:"stop_words"`
	Pairs     string `yaml:"pairs" json:"pairs"`
}

type Features struct {
	Representation string `yaml:"representation" json:"representation"`
	MaxFeatures    int    `yaml:"max_features" json:"max_features"`
	MinDF          int    `yaml:"min_df" json:"min_df"`
	// HashBuckets > 0 replaces the learned vocabulary with hashed buckets.
	HashBuckets int `yaml:"hash_buckets" json:"hash_buckets"`
}

type Training struct {
	Epochs       int     `yaml:"epochs" json:"epochs"`
	BatchSize    int     `yaml:"batch_size" json:"batch_size"`
	LearningRate float64 `yaml:"learning_rate" json:"learning_rate"`
	Seed         int64   `yaml:"seed" json:"seed"`
	Mode         string  `yaml:"mode" json:"mode"`
	// Workers is the number of gradient workers; 0 uses every logical core.
	Workers int  `yaml:"workers" json:"workers"`
	Resume  bool `yaml:"resume" json:"resume"`
}

type Output struct {
	// Dir defaults to the dataset directory.
	Dir        string `yaml:"dir" json:"dir"`
	Model      string `yaml:"model" json:"model"`
	Vocabulary string `yaml:"vocabulary" json:"vocabulary"`
	Report     bool   `yaml:"report" json:"report"`
}

type Log struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type Metrics struct {
	// Addr serves /metrics when set, e.g. ":9100".
	Addr string `yaml:"addr" json:"addr"`
}

// Config is a complete training run.
type Config struct {
	Dataset  Dataset  `yaml:"dataset" json:"dataset"`
	Features Features `yaml:"features" json:"features"`
	Training Training `yaml:"training" json:"training"`
	Output   Output   `yaml:"output" json:"output"`
	Log      Log      `yaml:"log" json:"log"`
	Metrics  Metrics  `yaml:"metrics" json:"metrics"`
}

// Default returns the settings of the reference training run.
func Default() *Config {
	return &Config{
		Dataset: Dataset{
			Pairs: PairsDeclared,
		},
		Features: Features{
			Representation: features.TFIDF.String(),
			MinDF:          1,
		},
		Training: Training{
			Epochs:       40,
			BatchSize:    100,
			LearningRate: 0.001,
			Seed:         logreg.DefaultSeed,
			Mode:         trainer.ModeSum.String(),
		},
		Output: Output{
			Model:      logreg.DefaultFileName,
			Vocabulary: DefaultVocabularyFile,
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return c, nil
}

// Load reads the YAML file at path. An empty path yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

// Validate checks ranges and names. It does not touch the file system.
func (c *Config) Validate() error {
	if c.Dataset.Dir == "" {
		return errors.New("dataset dir is required")
	}
	if c.Dataset.Labelled == "" {
		return errors.New("labelled pairs file is required")
	}
	switch c.Dataset.Pairs {
	case PairsDeclared, PairsClosure:
	default:
		return errors.Errorf("unknown pair source %q", c.Dataset.Pairs)
	}
	if _, err := features.ParseRepresentation(c.Features.Representation); err != nil {
		return err
	}
	if _, err := trainer.ParseMode(c.Training.Mode); err != nil {
		return err
	}
	if c.Features.MaxFeatures < 0 || c.Features.HashBuckets < 0 || c.Features.MinDF < 0 {
		return errors.New("feature limits must not be negative")
	}
	if c.Training.Epochs <= 0 {
		return errors.Errorf("epochs must be positive, got %d", c.Training.Epochs)
	}
	if c.Training.BatchSize <= 0 {
		return errors.Errorf("batch size must be positive, got %d", c.Training.BatchSize)
	}
	if !(c.Training.LearningRate > 0) {
		return errors.Errorf("learning rate must be positive, got %v", c.Training.LearningRate)
	}
	if c.Training.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Training.Workers)
	}
	if c.Output.Model == "" || c.Output.Vocabulary == "" {
		return errors.New("output file names are required")
	}
	return nil
}

// OutputDir is where the model and vocabulary are written.
func (c *Config) OutputDir() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	return c.Dataset.Dir
}
