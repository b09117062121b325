package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed logos/*
var builtin embed.FS

// EmbeddedLoader serves the logos compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

func NewEmbeddedLoader() *EmbeddedLoader {
	sub, _ := fs.Sub(builtin, "logos")
	return &EmbeddedLoader{fsys: sub}
}

func (e *EmbeddedLoader) LoadLogo(name string) ([]byte, error) {
	if err := ValidateLogoName(name); err != nil {
		return nil, err
	}
	for _, f := range logoFormats {
		data, err := fs.ReadFile(e.fsys, name+f.ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLogoRead, err)
		}
		if err := checkContent(f, name, data); err != nil {
			return nil, err
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrLogoNotFound, name)
}

var _ LogoLoader = (*EmbeddedLoader)(nil)
