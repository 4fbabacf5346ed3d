package cli

import (
	"bufio"
	"context"
	"os"
	"strings"

	"golang.org/x/term"

	autostream "github.com/servicehive/autostream"
	"github.com/servicehive/autostream/internal/config"
	"github.com/servicehive/autostream/internal/presentation/tui"
)

// RunChat starts the blocking terminal conversation. The Runner and the
// ConsoleAcquirer share one bufio.Reader so buffered input is never lost
// between the outer loop and the lead-capture questions.
func RunChat(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg)

	input := bufio.NewReader(os.Stdin)

	agent, err := NewAgent(ctx, cfg, logger,
		autostream.WithInputAcquirer(&autostream.ConsoleAcquirer{
			In:  input,
			Out: os.Stdout,
		}),
	)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		tui.PrintBanner(strings.TrimSpace(autostream.Version))
	}

	runner := autostream.NewRunner()
	runner.Input = input
	runner.Output = os.Stdout
	if interactive {
		runner.Renderer = tui.NewRenderer()
	}

	_, err = runner.Run(ctx, agent)
	return err
}
