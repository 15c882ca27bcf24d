package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// repl reads commands interactively and runs them against the editor.
type repl struct {
	rl *readline.Instance
}

func newREPL() (*repl, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "automath> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &repl{rl: rl}, nil
}

// Stderr returns a writer that does not disturb the prompt.
func (p *repl) Stderr() io.Writer {
	return p.rl.Stderr()
}

// Run reads lines until EOF, quit or ctx is done, and runs them with r.
func (p *repl) Run(ctx context.Context, r *runner) {
	defer p.rl.Close()

	r.out = p.rl.Stdout()
	defer func() { r.out = os.Stdout }()

	p.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := p.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "":
			continue
		case "help", "?":
			p.printHelp()
			continue
		case "quit", "exit", "q":
			return
		}

		step, err := parseLine(input)
		if err == nil {
			err = step.validate()
		}
		if err == nil {
			err = r.run(ctx, step)
		}
		if err != nil {
			fmt.Fprintf(p.rl.Stdout(), "Error: %v\n", err)
		}
	}
}

func (p *repl) printHelp() {
	fmt.Fprintln(p.rl.Stdout(), `Commands:
  type <text>         Type text at the selection
  paste <text>        Paste plain text
  md <text>           Paste markdown
  math <tex>          Insert an inline equation
  dmath <tex>         Insert a display equation
  undo | redo         Undo or redo the last change
  select <s> <e>      Select [s, e) in the main root
  wait <duration>     Sleep, letting pending conversions run
  settle              Wait until no conversion is pending
  export [format]     Print the document (markdown, html, text, cbor)
  status              Show session state
  help | quit`)
}
