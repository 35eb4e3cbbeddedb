// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/fixasm/internal/assembler"
	"github.com/retroenv/fixasm/internal/config"
	"github.com/retroenv/fixasm/internal/objectfile"
	"github.com/retroenv/fixasm/internal/options"
	"github.com/retroenv/fixasm/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ListingExtension is the file extension of generated listing files.
const ListingExtension = ".lst"

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, asmOptions assembler.Options) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating listing writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	sink := config.CreateSink(logger, opts)
	pipe := pipeline.New(logger, sink)
	if _, err := pipe.Execute(ctx, opts, asmOptions, writer); err != nil {
		return fmt.Errorf("processing '%s': %w", opts.Input, err)
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
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates the object filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	return replaceExtension(inputFile, objectfile.Extension)
}

// GenerateListingFilename generates the listing filename for a given input file
func GenerateListingFilename(inputFile string) string {
	return replaceExtension(inputFile, ListingExtension)
}

func replaceExtension(file, extension string) string {
	ext := filepath.Ext(file)
	return file[:len(file)-len(ext)] + extension
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Listing == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Listing)
	if err != nil {
		return nil, fmt.Errorf("creating listing file %s: %w", opts.Listing, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("fixasm", log.String("version", buildinfo.Version(version, commit, date)))
}
