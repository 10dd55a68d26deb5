package main

import (
	"bufio"
	"context"
	"io"
)

// InputWorker reads stdin line by line and hands each line to the commander.
// End of input stops the whole client.
type InputWorker struct {
	in       io.Reader
	commands *commander
	quit     func()
}

func NewInputWorker(in io.Reader, commands *commander, quit func()) *InputWorker {
	return &InputWorker{in: in, commands: commands, quit: quit}
}

func (w *InputWorker) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(w.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				w.quit()
				return nil
			}
			if err := w.commands.Execute(ctx, line); err != nil {
				w.commands.out.Error(err)
			}
			if w.commands.quitting {
				w.quit()
				return nil
			}
		}
	}
}
