package main

import (
	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/server"
)

// Pool abstracts generator pool operations for testability.
type Pool interface {
	server.Pool
	Size() int
	Close() error
}

// poolAdapter exposes a specsheet.GeneratorPool as a Pool.
type poolAdapter struct {
	server.Pool
	pool *specsheet.GeneratorPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newPool creates a lazily filled pool of size generators built with opts.
func newPool(size int, opts ...specsheet.Option) Pool {
	gp := specsheet.NewGeneratorPool(size, opts...)
	return &poolAdapter{Pool: server.NewPool(gp), pool: gp}
}

func (p *poolAdapter) Size() int    { return p.pool.Size() }
func (p *poolAdapter) Close() error { return p.pool.Close() }
