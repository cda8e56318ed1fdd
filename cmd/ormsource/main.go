// Package main provides the CLI entrypoint for ormsource.
//
// ormsource reads mapping documents and annotated Go packages, binds them
// into entity metadata and prints the result:
//   - as YAML (default), or a one-line summary per entity with -summary
//   - or only validates the inputs with -check
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/config"
	"github.com/twtxwydavid/hibernate-orm/internal/diagnostic"
	"github.com/twtxwydavid/hibernate-orm/internal/logging"
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/metadata"
)

func main() {
	opts, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, config.ErrNoInputs) {
			usage(os.Stderr)

			if errors.Is(err, flag.ErrHelp) {
				os.Exit(0)
			}
		}

		fmt.Fprintln(os.Stderr, "ormsource:", err)
		os.Exit(2)
	}

	logger, err := logging.New(opts.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ormsource:", err)
		os.Exit(1)
	}
	defer logging.Sync(logger)

	if err := run(opts, logger, os.Stdout); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, "ormsource:", e)
		}

		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: ormsource [flags] [mapping.hbm.yaml ...]")
	config.Defaults().FlagSet(w).PrintDefaults()
}

// run loads every input, binds it and writes the result to out (or to the
// -o file).
func run(opts *config.Options, logger *zap.SugaredLogger, out io.Writer) error {
	docs, diags, err := loadDocuments(opts, logger)
	if err != nil {
		return err
	}

	logger.Debugw("validated mapping documents",
		"documents", len(docs), "warnings", len(diags.Warnings), "infos", len(diags.Infos))

	builder, err := metadata.NewBuilder(logger, opts.BuildConfig())
	if err != nil {
		return err
	}

	for _, path := range opts.MappingFiles {
		builder.AddDocument(docs[path], path)
	}

	if len(opts.Packages) > 0 {
		index, err := annotation.NewLoader(opts.Dir).LoadPackages(opts.Packages...)
		if err != nil {
			return err
		}

		builder.AddAnnotationIndex(index, strings.Join(opts.Packages, ","))
	}

	md, err := builder.Build()
	if err != nil {
		return err
	}

	logger.Debugw("bound metadata", "entities", len(md.Entities), "filterDefs", len(md.FilterDefs))

	if opts.Check {
		_, err := fmt.Fprintf(out, "ok: %d entities, %d filter definitions\n", len(md.Entities), len(md.FilterDefs))

		return err
	}

	var data []byte

	if opts.Summary {
		data = []byte(metadata.Summary(md))
	} else {
		data, err = metadata.ExportYAML(md)
		if err != nil {
			return err
		}
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.Output, err)
		}

		logger.Infow("wrote bound metadata", "file", opts.Output)

		return nil
	}

	_, err = out.Write(data)

	return err
}

// loadDocuments parses and validates every mapping document and returns the
// diagnostics of all of them. All failures are reported together.
func loadDocuments(opts *config.Options, logger *zap.SugaredLogger) (map[string]*mapping.Document, diagnostic.Diagnostics, error) {
	docs := make(map[string]*mapping.Document, len(opts.MappingFiles))

	var (
		all  diagnostic.Diagnostics
		errs error
	)

	for _, path := range opts.MappingFiles {
		doc, err := mapping.LoadFile(path, opts.DocumentDefaults())
		if err != nil {
			errs = multierr.Append(errs, err)

			continue
		}

		diags := mapping.Validate(doc, path)
		all.Merge(*diags)

		if !diags.IsValid() {
			errs = multierr.Append(errs, diags.Error())

			continue
		}

		docs[path] = doc
	}

	logDiagnostics(logger, all)

	return docs, all, errs
}

// logDiagnostics logs warnings and, at debug level, infos. Errors are
// returned to the caller instead.
func logDiagnostics(logger *zap.SugaredLogger, diags diagnostic.Diagnostics) {
	for _, w := range diags.Warnings {
		logger.Warnw(w.Message, "code", w.Code, "origin", w.Origin, "path", w.Path)
	}

	for _, i := range diags.Infos {
		logger.Debugw(i.Message, "code", i.Code, "origin", i.Origin, "path", i.Path)
	}
}
