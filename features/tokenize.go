package features

import "bufio"
import "io"
import "os"
import "strings"
import "unicode"
import "unicode/utf8"

import "github.com/pkg/errors"
import "golang.org/x/text/cases"
import "golang.org/x/text/unicode/norm"

// StopWords is a set of folded terms to drop.
type StopWords map[string]struct{}

// Has reports whether term is a stop word. A nil set has none.
func (s StopWords) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// LoadStopWords reads one word per line; blank lines are skipped.
func LoadStopWords(r io.Reader) (StopWords, error) {
	var out = make(StopWords)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		for _, term := range Tokenize(sc.Text(), nil) {
			out[term] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read stop words")
	}
	return out, nil
}

// LoadStopWordsFile reads a stop word list. An empty path yields an empty set.
func LoadStopWordsFile(path string) (StopWords, error) {
	if path == "" {
		return StopWords{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return LoadStopWords(f)
}

func separator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Tokenize normalizes text and splits it into terms of at least two runes.
// It is safe for concurrent use.
func Tokenize(text string, stop StopWords) []string {
	// a Caser keeps state, so every call gets its own
	text = cases.Fold().String(norm.NFKC.String(text))
	fields := strings.FieldsFunc(text, separator)
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 || stop.Has(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}
