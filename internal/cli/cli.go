// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/fixasm/internal/assembler"
	"github.com/retroenv/fixasm/internal/options"
)

const usageLine = "usage: fixasm [options] <file to assemble>"

// ParseFlags parses command line flags and returns program and assembler options
func ParseFlags() (options.Program, assembler.Options, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, assembler.Options{}, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, assembler.Options{}, err
	}

	asmOptions, err := createAssemblerOptions(opts)
	if err != nil {
		return opts, assembler.Options{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, asmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "missing file to assemble"
	}
	return e.msg
}

// Misuse returns whether the arguments were given incorrectly, as opposed
// to no file being given at all.
func (e *UsageError) Misuse() bool {
	return e.msg != ""
}

// ShowUsage prints the usage line, followed by the flag defaults in case
// of a misuse.
func (e *UsageError) ShowUsage() {
	fmt.Println(usageLine)
	if e.Misuse() && e.flags != nil {
		fmt.Println()
		e.flags.PrintDefaults()
		fmt.Println()
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after file to assemble, please pass the file to assemble as last argument", arg),
			}
		}
	}
	return nil
}

// createAssemblerOptions creates assembler options based on program options
func createAssemblerOptions(opts options.Program) (assembler.Options, error) {
	asmOptions := assembler.NewOptions()

	origin := strings.TrimPrefix(strings.TrimPrefix(opts.Origin, "$"), "0x")
	value, err := strconv.ParseUint(origin, 16, 16)
	if err != nil {
		return asmOptions, fmt.Errorf("invalid origin '%s': %w", opts.Origin, err)
	}
	asmOptions.Origin = uint16(value)

	return asmOptions, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output object file, defaults to the source name with .o extension")
	flags.StringVar(&opts.Listing, "l", "", "name of the listing file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .o file naming, for example *.asm")
	flags.StringVar(&opts.Origin, "origin", "8000", "start address in hex used if the source contains no ORG")
	flags.BoolVar(&opts.NoPrompt, "y", false, "do not wait for acknowledgement of assembly errors")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.AssembleTest, "verify", false, "verify the written object file by reading it back and comparing it to the assembled program")
}
