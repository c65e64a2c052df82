// Command generate builds a star system offline and prints it as JSON.
//
//	generate -input system.yaml
//	generate -catalog data/presets.yaml -index 1 -seed 42
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"starforge/internal/catalog"
	"starforge/internal/orbit"
	"starforge/internal/shared/config"
	"starforge/internal/shared/logger"
	"starforge/internal/system"

	"gopkg.in/yaml.v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	input       string
	catalogPath string
	index       int
	seed        int64
	seedSet     bool
	maxOrbits   int
	maxWorlds   int
	maxStars    int
	logLevel    string
	compact     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "input", "", "YAML generation request")
	fs.StringVar(&opts.catalogPath, "catalog", "", "YAML preset catalog to pick a star from")
	fs.IntVar(&opts.index, "index", -1, "catalog index of the primary star")
	fs.Int64Var(&opts.seed, "seed", 0, "seed overriding the request (random when unset)")
	fs.IntVar(&opts.maxOrbits, "max-orbits", orbit.DefaultLimits.MaxOrbits, "orbit slots allowed per star")
	fs.IntVar(&opts.maxWorlds, "max-worlds", orbit.DefaultLimits.MaxWorlds, "occupied orbits allowed per star")
	fs.IntVar(&opts.maxStars, "max-stars", 4, "stars allowed per system")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	fs.BoolVar(&opts.compact, "compact", false, "print JSON without indentation")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})

	switch {
	case opts.input == "" && opts.catalogPath == "":
		return options{}, fmt.Errorf("one of -input or -catalog is required")
	case opts.input != "" && opts.catalogPath != "":
		return options{}, fmt.Errorf("-input and -catalog cannot be combined")
	case opts.catalogPath != "" && opts.index < 0:
		return options{}, fmt.Errorf("-index is required with -catalog")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log := logger.New(config.LoggingConfig{Level: opts.logLevel}, stderr)

	req, err := buildRequest(ctx, opts)
	if err != nil {
		return err
	}
	if opts.seedSet {
		req.Seed = &opts.seed
	}

	in, err := req.Input()
	if err != nil {
		return fmt.Errorf("failed to seed generation: %w", err)
	}

	generator := system.NewGenerator(system.GeneratorConfig{
		Limits:   orbit.Limits{MaxOrbits: opts.maxOrbits, MaxWorlds: opts.maxWorlds},
		MaxStars: opts.maxStars,
	}, log)

	sys, err := generator.Generate(ctx, in)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(sys)
}

func buildRequest(ctx context.Context, opts options) (system.Request, error) {
	if opts.input != "" {
		return readRequest(opts.input)
	}

	src, err := catalog.LoadFile(opts.catalogPath)
	if err != nil {
		return system.Request{}, err
	}
	row, err := src.LookupByIndex(ctx, opts.index)
	if err != nil {
		return system.Request{}, err
	}

	return system.Request{
		Name: row.Name(),
		Stars: []system.StarInput{{
			SpectralType: row.SpectralType,
			Luminosity:   row.Luminosity,
			Presets:      row.Presets,
			Catalog:      &row,
		}},
	}, nil
}

func readRequest(path string) (system.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return system.Request{}, fmt.Errorf("failed to open request: %w", err)
	}
	defer f.Close()

	var req system.Request
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&req); err != nil {
		return system.Request{}, fmt.Errorf("failed to decode request %s: %w", path, err)
	}
	return req, nil
}
