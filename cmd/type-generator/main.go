// Package main provides the entrypoint for type-generator.
//
// type-generator reduces a stripped module document to its public surface:
//   - Loads Managed/Assembly-CSharp-cleaned-remapped-stripped.dll.yaml
//   - Removes compiler artifacts and members no consumer can call
//   - Repairs references the upstream stripping left dangling
//   - Writes Managed/Assembly-CSharp-eft.dll.yaml
//
// It takes no arguments. Locations and the optional Neo4j export are set in
// type-generator.yaml, .env or TYPEGEN_* variables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"type-generator/internal/config"
	"type-generator/internal/graphstore"
	"type-generator/internal/moduleio"
	"type-generator/internal/strip"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: config.AppName,
	})

	if err := run(context.Background(), logger); err != nil {
		logger.Error("failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger.SetLevel(level)

	reader, err := moduleio.NewReader(
		moduleio.WithSearchDirs(cfg.SearchDirs...),
		moduleio.WithCacheSize(cfg.ResolverCacheSize),
		moduleio.WithCoreLibrary(cfg.CoreLibrary),
		moduleio.WithReaderLogger(logger),
	)
	if err != nil {
		return err
	}

	writer := moduleio.NewWriter(moduleio.WithWriterLogger(logger))

	result, err := strip.New(strip.WithLogger(logger)).Run(reader, writer, cfg.Input, cfg.Output)
	if err != nil {
		return err
	}

	logger.Info("done", "changes", result.Diagnostics.Summary(), "warnings", len(result.Diagnostics.Warnings))

	if !cfg.Graph.Enabled() {
		return nil
	}

	return export(ctx, cfg.Graph, result, logger)
}

func export(ctx context.Context, cfg config.GraphConfig, result *strip.Result, logger *log.Logger) (err error) {
	exporter, err := graphstore.NewExporter(ctx, cfg.URI, cfg.User, cfg.Password, graphstore.WithLogger(logger))
	if err != nil {
		return err
	}

	defer func() {
		if cerr := exporter.Close(ctx); cerr != nil && err == nil {
			err = fmt.Errorf("closing neo4j driver: %w", cerr)
		}
	}()

	if cfg.Clean {
		if err := exporter.Clean(ctx); err != nil {
			return err
		}
	}

	if err := exporter.CreateIndexes(ctx); err != nil {
		return err
	}

	return exporter.Export(ctx, result.Graph)
}
