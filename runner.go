package autostream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/servicehive/autostream/pkg/domain"
)

// ContentRenderer transforms agent responses before output. This allows for
// TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Runner handles the blocking terminal loop of the agent using provided IO.
// This allows for easy testing and integration with different frontends.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer
}

// NewRunner creates a new Runner. Input and Output must be set by the
// caller (typically os.Stdin and os.Stdout).
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the conversation loop until the lead is captured, the user
// exits, or input is exhausted. It returns the final state.
func (r *Runner) Run(ctx context.Context, agent *Agent) (*domain.State, error) {
	if r.Input == nil {
		return nil, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	// Reuse an existing bufio.Reader so a ConsoleAcquirer sharing the same
	// reader does not lose buffered bytes.
	lineReader, ok := r.Input.(*bufio.Reader)
	if !ok {
		lineReader = bufio.NewReader(r.Input)
	}
	writer := r.Output

	state := domain.NewState()

	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		next, err := agent.Advance(ctx, state)
		if err != nil {
			return state, fmt.Errorf("advance error: %w", err)
		}
		state = next

		if state.AgentResponse != "" {
			output := state.AgentResponse
			if r.Renderer != nil {
				if rendered, rerr := r.Renderer(output); rerr == nil {
					output = rendered
				}
			}
			fmt.Fprintln(writer, strings.TrimSpace(output))
		}

		if state.Step == domain.StepDone {
			break
		}

		fmt.Fprint(writer, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Graceful exit on EOF.
				break
			}
			return state, fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)

		if input == "exit" || input == "quit" {
			fmt.Fprintln(writer, "Bye!")
			break
		}

		state.UserInput = input
		state.AddMessage(domain.RoleUser, input)
		state.AgentResponse = ""
		state.Step = domain.NodeIntent
	}

	return state, nil
}
