package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DirLoader serves logos from {dir}/logos on disk. Lookups go through
// os.Root, so a symlink inside logos/ cannot reach files outside it.
type DirLoader struct {
	dir string
}

// NewDirLoader returns ErrInvalidBasePath unless dir is an existing directory.
// The logos/ subdirectory itself is optional.
func NewDirLoader(dir string) (*DirLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBasePath, abs)
	}
	return &DirLoader{dir: abs}, nil
}

func (d *DirLoader) LoadLogo(name string) ([]byte, error) {
	if err := ValidateLogoName(name); err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(filepath.Join(d.dir, "logos"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrLogoNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoRead, err)
	}
	defer func() { _ = root.Close() }()

	for _, f := range logoFormats {
		data, err := readLimited(root, name+f.ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := checkContent(f, name, data); err != nil {
			return nil, err
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrLogoNotFound, name)
}

// readLimited reads at most one byte past MaxLogoSize so oversized files
// are detected without loading them whole.
func readLimited(root *os.Root, file string) ([]byte, error) {
	fh, err := root.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoRead, err)
	}
	defer func() { _ = fh.Close() }()

	data, err := io.ReadAll(io.LimitReader(fh, MaxLogoSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoRead, err)
	}
	return data, nil
}

var _ LogoLoader = (*DirLoader)(nil)
