package instance

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"q.log/tableau/model"
)

// Reader reads a problem file to construct a model. Files ending in .mps are
// read through GLPK, everything else with the text grammar of Parse.
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

// ConstructModelFromFile returns the *Model described by the file.
func (r *Reader) ConstructModelFromFile() (*model.Model, error) {
	if _, err := os.Stat(r.filename); err != nil {
		return nil, openError(r.filename, err)
	}

	if strings.EqualFold(filepath.Ext(r.filename), ".mps") {
		klog.V(1).Infof("reading MPS file %s", r.filename)
		return ReadMPS(r.filename)
	}

	f, err := os.Open(r.filename)
	if err != nil {
		return nil, openError(r.filename, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", r.filename)
	}
	klog.V(1).Infof("read %s: %s problem, %d variables, %d constraints",
		r.filename, m.Orientation, m.NumCols, m.NumRows)
	return m, nil
}

func openError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(ErrInputNotFound, "%s", name)
	}
	return errors.Wrapf(ErrIO, "%s: %v", name, err)
}
