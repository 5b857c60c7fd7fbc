package specs

import "encoding/csv"
import "io"
import "os"
import "strings"

import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/specmatch/cluster"
import "github.com/neurlang/specmatch/metrics"

// MatchLabel marks a row whose specs are the same entity. Any other label
// declares them different.
const MatchLabel = "1"

// Row is one labelled pair.
type Row struct {
	Line  int
	Left  string
	Right string
	Label string
}

func (r Row) Match() bool {
	return r.Label == MatchLabel
}

// Stats summarizes an ingestion.
type Stats struct {
	Rows      int
	Merges    int
	Diffs     int
	SelfPairs int
	Repeated  int
}

// ReadRows parses the labelled CSV. The header line is skipped and rows
// shorter than three fields are rejected.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read header")
	}
	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read labelled pairs")
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 3 {
			return nil, errors.Errorf("line %d: %d fields, want 3", line, len(rec))
		}
		rows = append(rows, Row{
			Line:  line,
			Left:  strings.TrimSpace(rec[0]),
			Right: strings.TrimSpace(rec[1]),
			Label: strings.TrimSpace(rec[2]),
		})
	}
}

// Ingester records labelled rows into a cluster store.
type Ingester struct {
	store   *cluster.Store
	logger  *zap.Logger
	metrics *metrics.Ingestion
}

// NewIngester writes into store. logger and m may be nil.
func NewIngester(store *cluster.Store, logger *zap.Logger, m *metrics.Ingestion) *Ingester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingester{store: store, logger: logger, metrics: m}
}

// Ingest applies every MATCH row first and every DIFFER row second, so a
// difference is always declared against the final clusters of the file.
// Self pairs are skipped. A row naming an unregistered spec fails the
// ingestion.
func (in *Ingester) Ingest(rows []Row) (Stats, error) {
	st := Stats{Rows: len(rows)}
	for _, pass := range []bool{true, false} {
		for _, row := range rows {
			if row.Match() != pass {
				continue
			}
			if row.Left == row.Right {
				st.SelfPairs++
				in.skip("self_pair")
				continue
			}
			if err := in.apply(row, &st); err != nil {
				return st, err
			}
		}
	}
	merges, diffs := in.store.Counts()
	in.logger.Info("labelled pairs ingested",
		zap.Int("rows", st.Rows),
		zap.Int("merges", st.Merges),
		zap.Int("diffs", st.Diffs),
		zap.Int("selfPairs", st.SelfPairs),
		zap.Int("repeated", st.Repeated),
		zap.Int("matchDeclarations", merges),
		zap.Int("differDeclarations", diffs))
	return st, nil
}

func (in *Ingester) apply(row Row, st *Stats) error {
	merges, diffs := in.store.Counts()
	var err error
	if row.Match() {
		_, err = in.store.Merge(row.Left, row.Right)
	} else {
		_, err = in.store.Diff(row.Left, row.Right)
	}
	if err != nil {
		return errors.Wrapf(err, "line %d", row.Line)
	}
	m, d := in.store.Counts()
	switch {
	case m > merges:
		st.Merges++
		in.declared(cluster.Match)
	case d > diffs:
		st.Diffs++
		in.declared(cluster.Differ)
	default:
		st.Repeated++
		in.skip("repeated")
	}
	return nil
}

func (in *Ingester) declared(o cluster.Outcome) {
	if in.metrics != nil {
		in.metrics.Declarations.WithLabelValues(strings.ToLower(o.String())).Inc()
	}
}

func (in *Ingester) skip(reason string) {
	if in.metrics != nil {
		in.metrics.Skipped.WithLabelValues(reason).Inc()
	}
}

// ReadLabelled parses r and ingests it into store.
func ReadLabelled(r io.Reader, store *cluster.Store, logger *zap.Logger, m *metrics.Ingestion) (Stats, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return Stats{}, err
	}
	return NewIngester(store, logger, m).Ingest(rows)
}

// ReadLabelledFile is ReadLabelled on the file at path.
func ReadLabelledFile(path string, store *cluster.Store, logger *zap.Logger, m *metrics.Ingestion) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, errors.WithStack(err)
	}
	defer f.Close()
	return ReadLabelled(f, store, logger, m)
}

// Register adds every id to store and returns the store size.
func Register(store *cluster.Store, ids []string, m *metrics.Ingestion) int {
	for _, id := range ids {
		store.Register(id)
	}
	if m != nil {
		m.Specs.Set(float64(store.Len()))
	}
	return store.Len()
}
