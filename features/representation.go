package features

import "github.com/pkg/errors"

// Representation selects how term counts are weighted.
type Representation uint8

const (
	BagOfWords Representation = iota
	TFIDF
)

func (r Representation) String() string {
	if r == TFIDF {
		return "tfidf"
	}
	return "bow"
}

// ParseRepresentation accepts "bow" or "tfidf".
func ParseRepresentation(s string) (Representation, error) {
	switch s {
	case "bow":
		return BagOfWords, nil
	case "tfidf":
		return TFIDF, nil
	}
	return BagOfWords, errors.Errorf("unknown representation %q", s)
}
