package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CVPathPrefix is prepended to stored file names in AppliedJob.CVPath.
const CVPathPrefix = "uploads/"

// Uploads keeps files in one flat directory keyed by their client-supplied name.
// A second upload with the same name overwrites the first.
type Uploads struct {
	dir string
}

func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "can't create upload directory %s", dir)
	}
	return &Uploads{dir: dir}, nil
}

func (u *Uploads) Dir() string {
	return u.dir
}

// Save writes the file and returns the path to record, e.g. "uploads/resume.pdf".
func (u *Uploads) Save(file *multipart.FileHeader) (string, error) {
	name, err := fileName(file.Filename)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "can't open uploaded file")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", errors.Wrapf(err, "can't create %s", name)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", errors.Wrapf(err, "can't write %s", name)
	}

	return CVPathPrefix + name, nil
}

// Path maps a stored path or bare file name to its location on disk.
// Any directory part, such as the "uploads/" prefix, is dropped. Names that
// would resolve to the upload directory itself are rejected.
func (u *Uploads) Path(name string) (string, error) {
	base, err := fileName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(u.dir, base), nil
}

func fileName(raw string) (string, error) {
	name := filepath.Base(filepath.FromSlash(raw))
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return "", ErrInvalidFileName
	}
	return name, nil
}
