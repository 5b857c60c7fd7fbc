package main

import "context"
import "math/rand"
import "os"
import "path/filepath"
import "time"

import "github.com/pkg/errors"
import "github.com/prometheus/client_golang/prometheus"
import "go.uber.org/zap"

import "github.com/neurlang/specmatch/cluster"
import "github.com/neurlang/specmatch/config"
import "github.com/neurlang/specmatch/datasets"
import "github.com/neurlang/specmatch/datasets/specs"
import "github.com/neurlang/specmatch/features"
import "github.com/neurlang/specmatch/logreg"
import "github.com/neurlang/specmatch/metrics"
import "github.com/neurlang/specmatch/parallel"
import "github.com/neurlang/specmatch/trainer"

// ReportFile is the cluster report written with --report.
const ReportFile = "clusters.txt"

// summary is what a training run produced.
type summary struct {
	Specs      int
	Ingest     specs.Stats
	Dataset    *datasets.Dataset
	Features   int
	Resumed    bool
	Epochs     []trainer.EpochStats
	Model      string
	Vocabulary string
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) (*summary, error) {
	rep, err := features.ParseRepresentation(cfg.Features.Representation)
	if err != nil {
		return nil, err
	}
	mode, err := trainer.ParseMode(cfg.Training.Mode)
	if err != nil {
		return nil, err
	}
	sum := &summary{}

	ids, err := specs.Scan(cfg.Dataset.Dir)
	if err != nil {
		return nil, err
	}
	store := cluster.NewStore()
	ingestion := metrics.NewIngestion(reg)
	sum.Specs = specs.Register(store, ids, ingestion)
	logger.Info("dataset scanned", zap.String("dir", cfg.Dataset.Dir), zap.Int("specs", sum.Specs))

	sum.Ingest, err = specs.ReadLabelledFile(cfg.Dataset.Labelled, store, logger, ingestion)
	if err != nil {
		return nil, err
	}

	decls := store.Declarations()
	if cfg.Dataset.Pairs == config.PairsClosure {
		decls = store.ClosurePairs()
	}
	rng := rand.New(rand.NewSource(cfg.Training.Seed))
	sum.Dataset, err = datasets.Split(decls, len(decls), datasets.NewUniqueRand(0, len(decls)-1, rng))
	if err != nil {
		return nil, err
	}
	logger.Info("pairs split",
		zap.String("pairs", cfg.Dataset.Pairs),
		zap.Int("train", sum.Dataset.TrainSize),
		zap.Int("test", sum.Dataset.TestSize),
		zap.Int("validation", sum.Dataset.ValidationSize),
		zap.Int("vocabularySpecs", sum.Dataset.Vocabulary.Len()))

	stop, err := features.LoadStopWordsFile(cfg.Dataset.StopWords)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	vocabSpecs := sum.Dataset.Vocabulary.Specs()
	tokens, err := specs.LoadDocuments(ctx, cfg.Dataset.Dir, vocabSpecs, stop, cfg.Training.Workers)
	if err != nil {
		return nil, err
	}
	vocab := features.NewVocabulary()
	if cfg.Features.HashBuckets > 0 {
		vocab = features.NewHashedVocabulary(cfg.Features.HashBuckets)
	}
	for _, id := range vocabSpecs {
		vocab.AddDocument(tokens[id])
	}
	vocab.Prune(cfg.Features.MinDF, cfg.Features.MaxFeatures)
	sum.Features = vocab.Size()
	logger.Info("vocabulary built",
		zap.Int("documents", vocab.Documents()),
		zap.Int("features", sum.Features),
		zap.Bool("hashed", vocab.Hashed()),
		zap.Duration("took", time.Since(start)))
	if sum.Features == 0 && len(vocabSpecs) > 0 {
		return nil, errors.New("empty vocabulary")
	}

	outDir := cfg.OutputDir()
	sum.Model = filepath.Join(outDir, cfg.Output.Model)
	sum.Vocabulary = filepath.Join(outDir, cfg.Output.Vocabulary)
	var model *logreg.Model
	model, sum.Resumed, err = trainer.Resume(cfg.Training.Resume, sum.Model, rep, sum.Features, func() *logreg.Model {
		return logreg.New(sum.Features, cfg.Training.LearningRate, cfg.Training.Seed)
	})
	if err != nil {
		return nil, err
	}
	if sum.Resumed {
		logger.Info("resuming", zap.String("model", sum.Model))
	}

	sched := parallel.NewScheduler(cfg.Training.Workers)
	defer sched.Close()
	logger.Info("training",
		zap.String("cpu", parallel.CPUName()),
		zap.Int("workers", sched.Workers()),
		zap.Stringer("mode", mode),
		zap.Stringer("representation", rep),
		zap.Int("epochs", cfg.Training.Epochs),
		zap.Int("batchSize", cfg.Training.BatchSize),
		zap.Float64("learningRate", model.LearningRate))

	examples, err := trainer.NewPairExamples(sum.Dataset.Train(), store, tokens, features.NewVectorizer(vocab, rep))
	if err != nil {
		return nil, err
	}
	engine := trainer.NewEngine(model, sched,
		trainer.WithMode(mode),
		trainer.WithLogger(logger),
		trainer.WithMetrics(metrics.NewTraining(reg)))
	sum.Epochs, err = engine.Run(ctx, examples, trainer.Schedule{
		Epochs:    cfg.Training.Epochs,
		BatchSize: cfg.Training.BatchSize,
		Workers:   sched.Workers(),
		Sampler:   datasets.NewUniqueRand(0, examples.Len()-1, rng),
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := model.SaveFile(sum.Model, rep); err != nil {
		return nil, err
	}
	if err := vocab.SaveFile(sum.Vocabulary); err != nil {
		return nil, err
	}
	if cfg.Output.Report {
		if err := writeReport(filepath.Join(outDir, ReportFile), store); err != nil {
			return nil, err
		}
	}
	logger.Info("model saved",
		zap.String("model", sum.Model),
		zap.String("vocabulary", sum.Vocabulary),
		zap.Int("positives", examples.Positives()),
		zap.Int("examples", examples.Len()))
	return sum, nil
}

func writeReport(path string, store *cluster.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	err = store.WriteReport(f)
	if cerr := f.Close(); err == nil {
		err = errors.WithStack(cerr)
	}
	return err
}
