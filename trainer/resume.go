package trainer

import "os"

import "github.com/pkg/errors"

import "github.com/neurlang/specmatch/features"
import "github.com/neurlang/specmatch/logreg"

// Resume continues from the model stored at path when resume is set and the
// file exists; otherwise it returns fresh(). A stored model must match the
// representation and feature count of the current run.
func Resume(resume bool, path string, rep features.Representation, size int, fresh func() *logreg.Model) (*logreg.Model, bool, error) {
	if !resume {
		return fresh(), false, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fresh(), false, nil
	}
	m, stored, err := logreg.LoadFile(path)
	if err != nil {
		return nil, false, err
	}
	if stored != rep {
		return nil, false, errors.Errorf("resume: %s model, run uses %s", stored, rep)
	}
	if m.Features() != size {
		return nil, false, errors.Wrapf(ErrShape, "resume: model has %d features, vocabulary %d", m.Features(), size)
	}
	return m, true, nil
}
