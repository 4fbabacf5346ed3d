package autostream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ConsoleAcquirer is the blocking input strategy for terminal drivers: the
// lead-qualification flow asks its questions directly on the console and
// collects all answers within a single turn.
//
// Share the same bufio.Reader with the Runner so buffered input is not lost
// between the two.
type ConsoleAcquirer struct {
	In  *bufio.Reader
	Out io.Writer
}

// Acquire prints the question and blocks for one line of input.
func (c *ConsoleAcquirer) Acquire(_ context.Context, question string) (string, bool, error) {
	fmt.Fprintln(c.Out, question)
	fmt.Fprint(c.Out, "> ")

	text, err := c.In.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, err
	}
	value := strings.TrimSpace(text)
	if value == "" && err == io.EOF {
		// Out of input; let the engine suspend instead.
		return "", false, nil
	}
	return value, true, nil
}
