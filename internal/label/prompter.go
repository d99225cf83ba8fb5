package label

import (
	"bufio"
	"fmt"
	"io"
)

// TerminalPrompter reads labels line by line from in, writing the chart
// and prompt to out. It is the production prompter over stdin/stdout.
type TerminalPrompter struct {
	out io.Writer
	in  *bufio.Scanner
}

// NewTerminalPrompter wraps a reader/writer pair, typically
// os.Stdin/os.Stdout.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{out: out, in: bufio.NewScanner(in)}
}

// Prompt shows the rendered chart, asks for a category and returns the
// typed line. End of input counts as an empty label rather than an
// error, so piping a short answer file works.
func (p *TerminalPrompter) Prompt(runID, rendered string) (string, error) {
	if _, err := fmt.Fprint(p.out, rendered); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(p.out, "label for %s (enter to skip): ", runID); err != nil {
		return "", err
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return p.in.Text(), nil
}

// MapPrompter answers from a fixed runID-to-label map. Unknown runs get
// an empty label.
type MapPrompter map[string]string

func (m MapPrompter) Prompt(runID, rendered string) (string, error) {
	return m[runID], nil
}
