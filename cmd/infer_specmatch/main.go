package main

import "fmt"
import "io"
import "os"

import "github.com/pkg/errors"
import "github.com/spf13/cobra"

import "github.com/neurlang/specmatch/config"
import "github.com/neurlang/specmatch/datasets/specs"
import "github.com/neurlang/specmatch/features"
import "github.com/neurlang/specmatch/inference"
import "github.com/neurlang/specmatch/logreg"

func newCommand() *cobra.Command {
	var model, vocabulary, sw string
	cmd := &cobra.Command{
		Use:           "infer_specmatch <left.json> <right.json>",
		Short:         "Score a pair of product spec documents",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop, err := features.LoadStopWordsFile(sw)
			if err != nil {
				return err
			}
			scorer, err := inference.Load(model, vocabulary, stop)
			if err != nil {
				return err
			}
			return score(cmd.OutOrStdout(), scorer, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&model, "model", logreg.DefaultFileName, "trained model")
	cmd.Flags().StringVar(&vocabulary, "vocabulary", config.DefaultVocabularyFile, "vocabulary written with the model")
	cmd.Flags().StringVar(&sw, "sw", "", "stop words file used in training")
	return cmd
}

func score(w io.Writer, scorer *inference.Scorer, left, right string) error {
	var texts [2]string
	for i, path := range []string{left, right} {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.WithStack(err)
		}
		if texts[i], err = specs.ParseDocument(data); err != nil {
			return errors.Wrap(err, path)
		}
	}
	p := scorer.ScoreText(texts[0], texts[1])
	_, err := fmt.Fprintf(w, "%.6f\t%t\n", p, p >= inference.Threshold)
	return errors.WithStack(err)
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "infer_specmatch:", err)
		os.Exit(1)
	}
}
