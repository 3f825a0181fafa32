// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/charlie-x/simget/internal/colorize"
	"github.com/charlie-x/simget/internal/options"
	"github.com/charlie-x/simget/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, p *pipeline.Pipeline, opts options.Program, disasmOptions options.Disassembler) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	_, err = p.Execute(ctx, opts, disasmOptions, writer)
	if closeErr := writer.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing output: %w", closeErr)
	}
	return err
}

// ProcessFiles processes the files concurrently using the shared decoder of
// the pipeline. Every file is written to its own output file when more than
// one file is processed. A failing file does not stop the other files.
func ProcessFiles(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline, opts options.Program,
	disasmOptions options.Disassembler, files []string) error {

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var failed atomic.Int32
	for _, file := range files {
		fileOpts := opts
		fileOpts.Input = file
		if len(files) > 1 || opts.Batch != "" {
			fileOpts.Output = GenerateOutputFilename(file, opts.JSON)
		}

		g.Go(func() error {
			err := ProcessFile(ctx, p, fileOpts, disasmOptions)
			if err == nil {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return err
			}
			logger.Error("Disassembling failed", log.String("file", file), log.Err(err))
			failed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(files))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string, json bool) string {
	ext := filepath.Ext(inputFile)
	if json {
		return inputFile[:len(inputFile)-len(ext)] + ".jsonl"
	}
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

// createWriter returns the output file, or stdout that is colorized if
// enabled.
func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output != "" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
		}
		return file, nil
	}

	mode, err := colorize.ParseMode(opts.Color)
	if err != nil {
		return nil, err
	}
	if !opts.JSON && colorize.Enabled(mode, os.Stdout) {
		return colorize.New().Writer(os.Stdout), nil
	}
	return &nopCloser{os.Stdout}, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("avrdisasm", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
