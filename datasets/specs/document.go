package specs

import "bytes"
import "context"
import "os"
import "sort"
import "strings"

import "github.com/goccy/go-json"
import "github.com/pkg/errors"
import "golang.org/x/sync/errgroup"

import "github.com/neurlang/specmatch/features"
import "github.com/neurlang/specmatch/parallel"

// Text flattens a decoded JSON document into one string. Object keys are
// visited in sorted order and included, except the ones in angle brackets
// such as "<page title>" whose value is kept without the key. Nulls are
// dropped.
func Text(doc interface{}) string {
	var sb strings.Builder
	flatten(&sb, doc)
	return strings.TrimSpace(sb.String())
}

func flatten(sb *strings.Builder, v interface{}) {
	switch v := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !strings.HasPrefix(k, "<") {
				sb.WriteString(k)
				sb.WriteByte(' ')
			}
			flatten(sb, v[k])
		}
	case []interface{}:
		for _, e := range v {
			flatten(sb, e)
		}
	case string:
		sb.WriteString(v)
		sb.WriteByte(' ')
	case json.Number:
		sb.WriteString(v.String())
		sb.WriteByte(' ')
	case bool:
		if v {
			sb.WriteString("true ")
		} else {
			sb.WriteString("false ")
		}
	}
}

// ParseDocument decodes one JSON document and flattens it with Text.
func ParseDocument(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return "", errors.Wrap(err, "decode document")
	}
	return Text(doc), nil
}

// LoadDocument reads and flattens the document of spec id under dir.
func LoadDocument(dir, id string) (string, error) {
	path, err := Path(dir, id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	text, err := ParseDocument(data)
	if err != nil {
		return "", errors.Wrapf(err, "spec %s", id)
	}
	return text, nil
}

// LoadDocuments loads and tokenizes the documents of ids using at most
// workers goroutines, zero meaning parallel.DefaultWorkers. The first failure
// cancels the rest.
func LoadDocuments(ctx context.Context, dir string, ids []string, stop features.StopWords, workers int) (map[string][]string, error) {
	tokens := make([][]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	if workers <= 0 {
		workers = parallel.DefaultWorkers()
	}
	g.SetLimit(workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := LoadDocument(dir, id)
			if err != nil {
				return err
			}
			tokens[i] = features.Tokenize(text, stop)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(ids))
	for i, id := range ids {
		out[id] = tokens[i]
	}
	return out, nil
}
