// Package pipeline orchestrates the assembly workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/fixasm/internal/assembler"
	"github.com/retroenv/fixasm/internal/diagnostics"
	"github.com/retroenv/fixasm/internal/listing"
	"github.com/retroenv/fixasm/internal/loader"
	"github.com/retroenv/fixasm/internal/objectfile"
	"github.com/retroenv/fixasm/internal/options"
	"github.com/retroenv/fixasm/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete assembly workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
	sink   diagnostics.Sink
}

// New creates a new assembly pipeline. Diagnostics are passed to the given
// sink, a nil sink discards them.
func New(logger *log.Logger, sink diagnostics.Sink) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
		sink:   sink,
	}
}

// Execute runs the complete assembly pipeline: the source file is loaded and
// assembled, the listing is written to the listing writer and the object file
// is written if the program has no errors.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, asmOpts assembler.Options,
	listingWriter io.Writer) (*assembler.Program, error) {

	lines, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}

	return p.ExecuteWithLines(ctx, lines, opts, asmOpts, listingWriter)
}

// ExecuteWithLines runs the assembly pipeline with pre-loaded source lines.
// This is useful for testing and programmatic usage where the source is
// already in memory.
func (p *Pipeline) ExecuteWithLines(ctx context.Context, lines []string, opts options.Program,
	asmOpts assembler.Options, listingWriter io.Writer) (*assembler.Program, error) {

	p.printInfo(opts, len(lines))

	asm := assembler.New(p.logger, p.sink, asmOpts)
	program, asmErr := asm.Assemble(ctx, lines)

	// the listing is written for partially assembled programs as well
	if program != nil {
		if err := listing.New(program, listingWriter).Write(); err != nil {
			return program, fmt.Errorf("writing listing: %w", err)
		}
	}
	if asmErr != nil {
		return program, fmt.Errorf("assembling: %w", asmErr)
	}

	if err := p.writeObjectFile(opts, program); err != nil {
		return program, err
	}
	return program, nil
}

// writeObjectFile writes the object file and optionally verifies it.
func (p *Pipeline) writeObjectFile(opts options.Program, program *assembler.Program) error {
	if opts.Output == "" {
		return nil
	}

	written, err := objectfile.Write(opts.Output, program)
	if err != nil {
		return fmt.Errorf("writing object file: %w", err)
	}
	if !written {
		p.logger.Warn("Object file not written because of assembly errors",
			log.String("file", opts.Output),
			log.Int("errors", program.ErrorCount()))
		return nil
	}

	p.logger.Info("Object file written",
		log.String("file", opts.Output),
		log.Int("bytes", program.Size()))

	if opts.AssembleTest {
		if err := verification.VerifyOutput(p.logger, opts.Output, program); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}
	return nil
}

// printInfo prints information about the source being processed.
func (p *Pipeline) printInfo(opts options.Program, lines int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Assembling",
		log.String("file", opts.Input),
		log.Int("lines", lines),
	)
}
