package assets

import "errors"

// Resolver looks a logo up in an optional directory, then in the
// built-in set. Only a miss falls through; any other error is final.
type Resolver struct {
	dir      *DirLoader
	embedded *EmbeddedLoader
}

// NewResolver builds a Resolver. An empty dir means built-in logos only.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if dir == "" {
		return r, nil
	}
	d, err := NewDirLoader(dir)
	if err != nil {
		return nil, err
	}
	r.dir = d
	return r, nil
}

func (r *Resolver) LoadLogo(name string) ([]byte, error) {
	if r.dir != nil {
		data, err := r.dir.LoadLogo(name)
		if !errors.Is(err, ErrLogoNotFound) {
			return data, err
		}
	}
	return r.embedded.LoadLogo(name)
}

var _ LogoLoader = (*Resolver)(nil)
