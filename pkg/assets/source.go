package assets

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/chatbot-dev/chatbot/internal/errors"
)

// ErrNotFound is returned by a Source for names it does not hold. Names that
// fail CleanPath, and directories, are reported as not found too.
var ErrNotFound = stderrors.New("assets: not found")

// Object is an opened asset. Callers must close Body.
type Object struct {
	Name        string
	Body        io.ReadCloser
	Size        int64
	ModTime     time.Time
	ContentType string
	ETag        string
}

// Source opens assets by slash-separated relative name.
type Source interface {
	Open(ctx context.Context, name string) (*Object, error)
}

// CleanPath validates a request-relative asset name. It rejects traversal
// and absolute-path tricks so a source can never be made to read outside
// its root.
func CleanPath(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if strings.IndexByte(name, 0) != -1 || strings.Contains(name, `\`) {
		return "", false
	}
	// After prefix stripping a leading slash is an absolute-path attempt
	// such as "/assets//etc/passwd".
	if strings.HasPrefix(name, "/") {
		return "", false
	}
	// Dot segments are rejected before cleaning so they cannot be cleaned
	// away into a different path.
	for _, seg := range strings.Split(name, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(name)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}
	return clean, true
}

// DirSource serves files below a directory on disk.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Open implements Source. The returned Body also implements io.Seeker.
func (s *DirSource) Open(_ context.Context, name string) (*Object, error) {
	rel, ok := CleanPath(name)
	if !ok {
		return nil, ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, errors.New("E302").Wrap(err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.New("E302").Wrap(err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}

	return &Object{
		Name:    rel,
		Body:    f,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
