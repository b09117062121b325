package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	envFile   string
	quiet     bool
	verbose   bool
	logLevel  string
	logFormat string

	// set records the flags given on the command line.
	set map[string]bool
}

// apiFlags points at the product backend.
type apiFlags struct {
	baseURL   string
	token     string
	assetBase string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer flags.
type footerFlags struct {
	text   string
	date   string
	logo   string
	noLogo bool
}

// renderFlags tune generation itself.
type renderFlags struct {
	timeout         string
	fetchTimeout    string
	browserFallback bool
	assetPath       string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common   commonFlags
	api      apiFlags
	page     pageFlags
	footer   footerFlags
	render   renderFlags
	output   string
	workers  int
	specs    []string
	fromFile string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common  commonFlags
	api     apiFlags
	page    pageFlags
	footer  footerFlags
	render  renderFlags
	addr    string
	workers int
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	api    apiFlags
	json   bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading SPECSHEET_* variables")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging and detailed timing")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
}

func addAPIFlags(fs *flag.FlagSet, f *apiFlags) {
	fs.StringVar(&f.baseURL, "api", "", "product API base URL")
	fs.StringVar(&f.token, "token", "", "product API bearer token")
	fs.StringVar(&f.assetBase, "asset-base", "", "base URL for relative image paths (default: --api)")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in millimetres (5-40)")
}

func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.text, "footer-text", "", "footer company line")
	fs.StringVar(&f.date, "footer-date", "", "footer date: literal, \"auto\" or \"auto:FORMAT\"")
	fs.StringVar(&f.logo, "logo", "", "footer logo name, file path or URL")
	fs.BoolVar(&f.noLogo, "no-logo", false, "omit the footer logo")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "generation timeout per product (e.g., 30s, 2m)")
	fs.StringVar(&f.fetchTimeout, "fetch-timeout", "", "timeout per image download")
	fs.BoolVar(&f.browserFallback, "browser-fallback", false, "rasterize undecodable images in headless Chrome")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory whose logos/ folder overrides the embedded logos")
}

// newFlagSet builds a ContinueOnError flag set printing usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs.Parse and records which flags were given.
func parse(fs *flag.FlagSet, args []string, common *commonFlags) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	common.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { common.set[f.Name] = true })
	return nil
}

func registerGenerateFlags(fs *flag.FlagSet, f *generateFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel generators (0 = auto)")
	fs.StringArrayVarP(&f.specs, "spec", "s", nil, "specification choice Name=Value (repeatable)")
	fs.StringVarP(&f.fromFile, "from-file", "f", "", "read the product from a JSON file instead of the API")

	addCommonFlags(fs, &f.common)
	addAPIFlags(fs, &f.api)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addRenderFlags(fs, &f.render)
}

func parseGenerateFlags(args []string, w io.Writer) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := newFlagSet("generate", w, printGenerateUsage)
	registerGenerateFlags(fs, f)

	if err := parse(fs, args, &f.common); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func registerServeFlags(fs *flag.FlagSet, f *serveFlags) {
	fs.StringVar(&f.addr, "addr", "", "listen address (default \":8080\")")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent generations (0 = auto)")

	addCommonFlags(fs, &f.common)
	addAPIFlags(fs, &f.api)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addRenderFlags(fs, &f.render)
}

func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", w, printServeUsage)
	registerServeFlags(fs, f)

	if err := parse(fs, args, &f.common); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

func registerDoctorFlags(fs *flag.FlagSet, f *doctorFlags) {
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addCommonFlags(fs, &f.common)
	addAPIFlags(fs, &f.api)
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", w, printDoctorUsage)
	registerDoctorFlags(fs, f)

	if err := parse(fs, args, &f.common); err != nil {
		return nil, err
	}
	return f, nil
}
