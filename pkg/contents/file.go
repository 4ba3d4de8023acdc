package contents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/jsongraph/pkg/errors"
)

// FileSink stores the document text in a single file. Only the text is
// written; revision and flags are not persisted.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink creates a sink for path. The file does not need to exist.
func NewFileSink(path string) (*FileSink, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	return &FileSink{path: path}, nil
}

// Path returns the file path.
func (s *FileSink) Path() string { return s.path }

// SetContents writes the text to a temp file next to the target and renames
// it into place, so readers never see a partial document. A trailing newline
// is added.
func (s *FileSink) SetContents(_ context.Context, c Contents) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create temp file")
	}
	tmpName := tmp.Name()

	data := []byte(c.Text)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStorage, err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStorage, err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStorage, err, "replace %s", s.path)
	}
	return nil
}

// Load reads the file. The text counts as an external change since it did
// not come from this process.
func (s *FileSink) Load(_ context.Context) (*Contents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s does not exist", s.path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "stat %s", s.path)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", s.path)
	}
	return &Contents{
		Text:               string(data),
		HasExternalChanges: true,
		UpdatedAt:          info.ModTime().UTC(),
	}, nil
}

// Close implements Store.
func (s *FileSink) Close() error { return nil }

// String implements fmt.Stringer.
func (s *FileSink) String() string { return fmt.Sprintf("file:%s", s.path) }

var _ Store = (*FileSink)(nil)
