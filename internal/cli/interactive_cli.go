package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

var errEnd = errors.New("end")

// InteractiveCLI runs a Session repeatedly until it ends or the user interrupts.
type InteractiveCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
}

func NewInteractiveCLI(stdin io.Reader, stdout io.Writer) *InteractiveCLI {
	return &InteractiveCLI{
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
	}
}

//go:generate mockgen -source=interactive_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(ctx context.Context) error
}

func (cli *InteractiveCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break LOOP
				}
				errCh <- err
				break LOOP
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}
