package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/catalog"
	"github.com/alnah/go-specsheet/internal/config"
	"github.com/alnah/go-specsheet/internal/server"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock catalog, generator and pool
// ---------------------------------------------------------------------------

type mockCatalog struct {
	products map[string]*catalog.ProductDTO
	err      error
	pingErr  error

	mu    sync.Mutex
	calls []string
}

func (m *mockCatalog) Product(_ context.Context, id string) (*catalog.ProductDTO, error) {
	m.mu.Lock()
	m.calls = append(m.calls, id)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	dto, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %q", catalog.ErrNotFound, id)
	}
	return dto, nil
}

func (m *mockCatalog) Ping(context.Context) error { return m.pingErr }

type mockGenerator struct {
	err error

	mu     sync.Mutex
	inputs []specsheet.Input
}

func (m *mockGenerator) Generate(_ context.Context, input specsheet.Input) (*specsheet.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &specsheet.Result{
		FileName:  specsheet.FileName(input.Product.Code),
		PDF:       []byte("%PDF-1.3 mock " + input.ProductCode),
		PageCount: 1,
	}, nil
}

func (m *mockGenerator) getInputs() []specsheet.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]specsheet.Input(nil), m.inputs...)
}

type mockPool struct {
	gen        *mockGenerator
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
	opts     int
}

func (p *mockPool) Acquire(context.Context) (server.Generator, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.gen, nil
}

func (p *mockPool) Release(server.Generator) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// testEnv wires cat and pool into an Environment writing to buffers.
func testEnv(cat *mockCatalog, pool *mockPool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		NewCatalog: func(cfg *config.Config, _ *zap.Logger) (server.Catalog, error) {
			if cfg.API.BaseURL == "" {
				return nil, ErrMissingAPI
			}
			return cat, nil
		},
		NewPool: func(size int, opts ...specsheet.Option) Pool {
			pool.mu.Lock()
			if pool.size == 0 {
				pool.size = size
			}
			pool.opts = len(opts)
			pool.mu.Unlock()
			return pool
		},
		LookBrowser: func() (string, bool) { return "", false },
	}
	return env, stdout, stderr
}

func testDTO(id, code string) *catalog.ProductDTO {
	return &catalog.ProductDTO{
		ID:   id,
		Name: "Linea " + code,
		Code: code,
		Specifications: []catalog.SpecGroupDTO{
			{
				ID:   "g1",
				Name: "CCT",
				Specifications: []catalog.SpecOptionDTO{
					{ID: "o1", Spec: "2700K", Code: "27K"},
					{ID: "o2", Spec: "3000K", Code: "30K"},
				},
				SelectedSpecs: []catalog.SpecRefDTO{{ID: "o1"}, {ID: "o2"}},
			},
		},
		SpecSheet: []catalog.SpecCategoryDTO{
			{
				CategoryName: "Optics",
				Items: []catalog.SpecSheetItemDTO{
					{Name: "Beam", SelectedValues: []catalog.ValueDTO{{Value: "30°"}}},
				},
			},
		},
	}
}

// writeProductFile writes v as JSON into a temp file and returns its path.
func writeProductFile(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "product.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// argv prefixes args with the program name and command.
func argv(cmd string, args ...string) []string {
	return append([]string{"specsheet", cmd}, args...)
}
