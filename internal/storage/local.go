package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Static errors for library operations.
var (
	// ErrS3NotConfigured is returned when publication is attempted
	// without S3 configuration.
	ErrS3NotConfigured = errors.New("S3 storage is not configured")
	// ErrNotFound is returned when a clip name is not in the library.
	ErrNotFound = errors.New("clip not found in library")
	// ErrUnsafeName is returned for names that would escape the library
	// directories.
	ErrUnsafeName = errors.New("name must be a bare file name")
)

// LocalLibrary implements Library on the local filesystem: clips are read
// from a media directory and outputs land in an output directory. It does
// not support publication unless wrapped by S3Library.
type LocalLibrary struct {
	mediaDir string
	outDir   string
}

// NewLocalLibrary creates a LocalLibrary reading clips from mediaDir and
// writing outputs under outDir. An empty mediaDir defaults to "media"; an
// empty outDir defaults to a "clipforge" directory under the system temp
// dir. Both directories are created if missing.
func NewLocalLibrary(mediaDir, outDir string) (*LocalLibrary, error) {
	if mediaDir == "" {
		mediaDir = "media"
	}
	if outDir == "" {
		outDir = filepath.Join(os.TempDir(), "clipforge")
	}
	for _, dir := range []string{mediaDir, outDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return &LocalLibrary{mediaDir: mediaDir, outDir: outDir}, nil
}

// MediaDir returns the clip library directory.
func (l *LocalLibrary) MediaDir() string {
	return l.mediaDir
}

// OutputDir returns the output directory.
func (l *LocalLibrary) OutputDir() string {
	return l.outDir
}

// Resolve maps a clip name to its absolute path under the media
// directory. Names carrying separators or traversal elements are
// rejected, so a request can never address files outside the library.
func (l *LocalLibrary) Resolve(ctx context.Context, name string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	if err := checkBareName(name); err != nil {
		return "", err
	}

	path := filepath.Join(l.mediaDir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("stat clip %s: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, name)
	}

	return filepath.Abs(path)
}

// OutputPath decides where a new output is written. A relative name lands
// in the output directory, an absolute name is kept as given, and an
// empty name generates a unique one carrying ext.
func (l *LocalLibrary) OutputPath(name, ext string) (string, error) {
	if name == "" {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		name = uuid.NewString() + ext
	} else {
		if filepath.IsAbs(name) {
			return name, nil
		}
		if err := checkBareName(name); err != nil {
			return "", err
		}
	}
	return filepath.Abs(filepath.Join(l.outDir, name))
}

// Publish is not supported by LocalLibrary and returns ErrS3NotConfigured.
func (l *LocalLibrary) Publish(_ context.Context, _ string) (string, error) {
	return "", ErrS3NotConfigured
}

// Cleanup removes the given files. Missing files are not errors; other
// failures do not stop the sweep, and the first one is returned.
func (l *LocalLibrary) Cleanup(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove %s: %w", p, err)
			}
		}
	}
	return firstErr
}

func checkBareName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnsafeName)
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return nil
}
