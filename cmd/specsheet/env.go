package main

import (
	"io"
	"os"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/config"
	"github.com/alnah/go-specsheet/internal/fileutil"
	"github.com/alnah/go-specsheet/internal/server"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the factories for the catalog client and
// generator pool.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	NewCatalog  func(cfg *config.Config, logger *zap.Logger) (server.Catalog, error)
	NewPool     func(size int, opts ...specsheet.Option) Pool
	LookBrowser func() (string, bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		NewCatalog:  newCatalog,
		NewPool:     newPool,
		LookBrowser: lookBrowser,
	}
}

// lookBrowser finds the Chrome binary the rasterizer would launch.
// ROD_BROWSER_BIN wins over rod's own search.
func lookBrowser() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, fileutil.FileExists(bin)
	}
	return launcher.LookPath()
}
