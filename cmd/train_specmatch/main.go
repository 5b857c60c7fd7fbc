package main

import "context"
import "fmt"
import "net/http"
import "os"
import "os/signal"
import "syscall"

import "github.com/prometheus/client_golang/prometheus"
import "github.com/prometheus/client_golang/prometheus/collectors"
import "github.com/prometheus/client_golang/prometheus/promhttp"
import "github.com/spf13/cobra"
import "github.com/spf13/pflag"
import "go.uber.org/zap"

import "github.com/neurlang/specmatch/config"
import "github.com/neurlang/specmatch/logutil"

type flags struct {
	config string

	dir, csv, sw, pairs      string
	representation, mode     string
	out                      string
	epochs, batch, workers   int
	maxFeatures, hashBuckets int
	learningRate             float64
	seed                     int64
	resume, report           bool
	metricsAddr              string
	logLevel, logFormat      string
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "YAML configuration file")
	fs.StringVar(&f.dir, "dir", "", "dataset directory of <site>/<n>.json specs")
	fs.StringVar(&f.csv, "csv", "", "labelled pairs csv")
	fs.StringVar(&f.sw, "sw", "", "stop words file, one per line")
	fs.StringVar(&f.pairs, "pairs", config.PairsDeclared, "training pairs: declared or closure")
	fs.StringVar(&f.representation, "representation", "tfidf", "document vectors: bow or tfidf")
	fs.StringVar(&f.mode, "mode", "sum", "batch update: sum or mean")
	fs.StringVar(&f.out, "out", "", "output directory (default: the dataset directory)")
	fs.IntVar(&f.epochs, "epochs", 40, "training epochs")
	fs.IntVar(&f.batch, "batch", 100, "mini-batch size")
	fs.IntVar(&f.workers, "workers", 0, "gradient workers (0: all logical cores)")
	fs.IntVar(&f.maxFeatures, "max-features", 0, "keep the most frequent terms only (0: all)")
	fs.IntVar(&f.hashBuckets, "hash-buckets", 0, "hash terms into this many features instead of a vocabulary")
	fs.Float64Var(&f.learningRate, "lr", 0.001, "learning rate")
	fs.Int64Var(&f.seed, "seed", 12345, "random seed")
	fs.BoolVar(&f.resume, "resume", false, "continue from an existing model")
	fs.BoolVar(&f.report, "report", false, "write the cluster report next to the model")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level")
	fs.StringVar(&f.logFormat, "log-format", "console", "log format: console or json")
}

// apply overrides cfg with the flags set on the command line.
func (f *flags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, do func()) {
		if fs.Changed(name) {
			do()
		}
	}
	set("dir", func() { cfg.Dataset.Dir = f.dir })
	set("csv", func() { cfg.Dataset.Labelled = f.csv })
	set("sw", func() { cfg.Dataset.StopWords = f.sw })
	set("pairs", func() { cfg.Dataset.Pairs = f.pairs })
	set("representation", func() { cfg.Features.Representation = f.representation })
	set("max-features", func() { cfg.Features.MaxFeatures = f.maxFeatures })
	set("hash-buckets", func() { cfg.Features.HashBuckets = f.hashBuckets })
	set("mode", func() { cfg.Training.Mode = f.mode })
	set("epochs", func() { cfg.Training.Epochs = f.epochs })
	set("batch", func() { cfg.Training.BatchSize = f.batch })
	set("workers", func() { cfg.Training.Workers = f.workers })
	set("lr", func() { cfg.Training.LearningRate = f.learningRate })
	set("seed", func() { cfg.Training.Seed = f.seed })
	set("resume", func() { cfg.Training.Resume = f.resume })
	set("out", func() { cfg.Output.Dir = f.out })
	set("report", func() { cfg.Output.Report = f.report })
	set("metrics-addr", func() { cfg.Metrics.Addr = f.metricsAddr })
	set("log-level", func() { cfg.Log.Level = f.logLevel })
	set("log-format", func() { cfg.Log.Format = f.logFormat })
}

func newCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "train_specmatch",
		Short:         "Train a pairwise product spec matcher",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			f.apply(cmd.Flags(), cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := logutil.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer logger.Sync()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			if cfg.Metrics.Addr != "" {
				serveMetrics(cfg.Metrics.Addr, reg, logger)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			_, err = run(ctx, cfg, logger, reg)
			return err
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
}

func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "train_specmatch: %v\n", err)
		os.Exit(1)
	}
}
