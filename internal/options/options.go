// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input   string `arg:"positional" usage:"source file to assemble"`
	Output  string `flag:"o" usage:"output object file (default: source name with .o extension)"`
	Listing string `flag:"l" usage:"listing file (default: stdout)"`
	Batch   string `flag:"batch" usage:"batch process files matching pattern (e.g. *.asm)"`
}

// Flags contains behavior options.
type Flags struct {
	Origin       string `flag:"origin" usage:"start address in hex if the source has no ORG" default:"8000"`
	NoPrompt     bool   `flag:"y" usage:"do not wait for acknowledgement of assembly errors"`
	AssembleTest bool   `flag:"verify" usage:"verify the written object file by reading it back"`
	Debug        bool   `flag:"debug" usage:"enable debug logging"`
	Quiet        bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the assembler.
type Program struct {
	Parameters
	Flags
}
