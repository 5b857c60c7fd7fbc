package logreg

import "bufio"
import "io"
import "os"
import "strconv"
import "strings"

import "github.com/pkg/errors"

import "github.com/neurlang/specmatch/features"

// DefaultFileName is the name of the model file inside an output directory.
const DefaultFileName = "model.csv"

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Encode writes the model one field per line: representation, learning
// rate, bias, weight count, then every weight. Floats use the shortest
// decimal form that parses back to the same value.
func (m *Model) Encode(w io.Writer, rep features.Representation) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(rep.String())
	bw.WriteByte('\n')
	bw.WriteString(formatFloat(m.LearningRate))
	bw.WriteByte('\n')
	bw.WriteString(formatFloat(m.Bias))
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(len(m.Weights)))
	bw.WriteByte('\n')
	for _, weight := range m.Weights {
		bw.WriteString(formatFloat(weight))
		bw.WriteByte('\n')
	}
	return errors.WithStack(bw.Flush())
}

// Decode reads a model written by Encode.
func Decode(r io.Reader) (*Model, features.Representation, error) {
	sc := bufio.NewScanner(r)
	var line int
	next := func(what string) (string, error) {
		line++
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", errors.WithStack(err)
			}
			return "", errors.Errorf("model: missing %s at line %d", what, line)
		}
		return strings.TrimSpace(sc.Text()), nil
	}
	float := func(what string) (float64, error) {
		s, err := next(what)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "model: %s at line %d", what, line)
		}
		return f, nil
	}

	flag, err := next("representation")
	if err != nil {
		return nil, 0, err
	}
	rep, err := features.ParseRepresentation(flag)
	if err != nil {
		return nil, 0, errors.Wrap(err, "model")
	}
	var m Model
	if m.LearningRate, err = float("learning rate"); err != nil {
		return nil, 0, err
	}
	if m.Bias, err = float("bias"); err != nil {
		return nil, 0, err
	}
	s, err := next("weight count")
	if err != nil {
		return nil, 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, 0, errors.Errorf("model: bad weight count %q at line %d", s, line)
	}
	m.Weights = make([]float64, n)
	for i := range m.Weights {
		if m.Weights[i], err = float("weight"); err != nil {
			return nil, 0, err
		}
	}
	return &m, rep, nil
}

// SaveFile writes the model to path.
func (m *Model) SaveFile(path string, rep features.Representation) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	err = m.Encode(f, rep)
	if cerr := f.Close(); err == nil {
		err = errors.WithStack(cerr)
	}
	return err
}

// LoadFile reads a model from path.
func LoadFile(path string) (*Model, features.Representation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer f.Close()
	return Decode(f)
}
