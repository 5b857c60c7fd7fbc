package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/specmatch/features"
	"github.com/neurlang/specmatch/logreg"
)

func TestScorePair(t *testing.T) {
	dir := t.TempDir()
	vocab := features.NewVocabulary()
	vocab.AddDocument([]string{"canon", "eos"})
	vocab.AddDocument([]string{"nikon"})
	vocabPath := filepath.Join(dir, "vocabulary.tsv")
	require.NoError(t, vocab.SaveFile(vocabPath))

	m := &logreg.Model{Weights: []float64{-3, -3, -3}, Bias: 1, LearningRate: 0.001}
	modelPath := filepath.Join(dir, "model.csv")
	require.NoError(t, m.SaveFile(modelPath, features.BagOfWords))

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}
	left := write("a.json", `{"<page title>": "Canon EOS"}`)
	same := write("b.json", `{"<page title>": "canon eos"}`)
	other := write("c.json", `{"<page title>": "Nikon"}`)

	for _, tc := range []struct {
		right string
		match string
	}{
		{same, "true"},
		{other, "false"},
	} {
		var out bytes.Buffer
		cmd := newCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--model", modelPath, "--vocabulary", vocabPath, left, tc.right})
		require.NoError(t, cmd.Execute())
		fields := strings.Fields(out.String())
		require.Len(t, fields, 2)
		require.Equal(t, tc.match, fields[1])
	}

	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--model", modelPath, "--vocabulary", vocabPath, left, write("bad.json", "{")})
	require.Error(t, cmd.Execute())
}
