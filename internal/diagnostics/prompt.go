package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const promptMessage = "Press enter to continue..."

// Prompt prints every diagnostic and blocks until the user acknowledges it
// by pressing enter.
type Prompt struct {
	out io.Writer
	in  *bufio.Reader
}

// NewPrompt returns a sink that writes diagnostics to out and waits for a
// line read from in.
func NewPrompt(out io.Writer, in io.Reader) *Prompt {
	return &Prompt{
		out: out,
		in:  bufio.NewReader(in),
	}
}

// Observe implements Sink. Reaching the end of the input does not block.
func (p *Prompt) Observe(d Diagnostic) {
	_, _ = fmt.Fprintln(p.out, d.String())
	_, _ = fmt.Fprint(p.out, promptMessage)
	_, _ = p.in.ReadString('\n')
}

// Interactive returns whether the file is connected to a terminal, which
// is required for a prompt to be acknowledged.
func Interactive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
