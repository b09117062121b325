package server

import (
	"context"
	"fmt"

	specsheet "github.com/alnah/go-specsheet"
)

// generatorPool adapts specsheet.GeneratorPool to Pool.
type generatorPool struct {
	pool *specsheet.GeneratorPool
}

// NewPool wraps p.
func NewPool(p *specsheet.GeneratorPool) Pool {
	return generatorPool{pool: p}
}

func (g generatorPool) Acquire(ctx context.Context) (Generator, error) {
	gen, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// Release panics if gen did not come from this pool.
func (g generatorPool) Release(gen Generator) {
	sg, ok := gen.(*specsheet.Generator)
	if !ok {
		panic(fmt.Sprintf("server: Release got unexpected type %T", gen))
	}
	g.pool.Release(sg)
}
