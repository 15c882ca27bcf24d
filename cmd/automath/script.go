package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/automath/internal/clipboard"
	"github.com/dshills/automath/internal/command"
	"github.com/dshills/automath/internal/editor"
	"github.com/dshills/automath/internal/export"
)

// Step actions.
const (
	ActionType          = "type"
	ActionPaste         = "paste"
	ActionPasteMarkdown = "paste-markdown"
	ActionMath          = "math"
	ActionUndo          = "undo"
	ActionRedo          = "redo"
	ActionSelect        = "select"
	ActionWait          = "wait"
	ActionSettle        = "settle"
	ActionExport        = "export"
	ActionStatus        = "status"
)

var errUnknownAction = errors.New("unknown action")

// Step is one scripted editor interaction.
type Step struct {
	Action  string `yaml:"action"`
	Text    string `yaml:"text,omitempty"`
	Start   int    `yaml:"start,omitempty"`
	End     int    `yaml:"end,omitempty"`
	Display bool   `yaml:"display,omitempty"`
	Wait    string `yaml:"wait,omitempty"`
	Format  string `yaml:"format,omitempty"`
}

// Script is a list of steps read from a YAML file.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script and validates its steps.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	switch s.Action {
	case ActionType, ActionPaste, ActionPasteMarkdown, ActionMath:
		if s.Text == "" {
			return fmt.Errorf("%s: text is required", s.Action)
		}
	case ActionWait:
		if _, err := time.ParseDuration(s.Wait); err != nil {
			return fmt.Errorf("wait: %w", err)
		}
	case ActionExport:
		if s.Format != "" {
			if _, err := export.ParseFormat(s.Format); err != nil {
				return err
			}
		}
	case ActionUndo, ActionRedo, ActionSelect, ActionSettle, ActionStatus:
	default:
		return fmt.Errorf("%q: %w", s.Action, errUnknownAction)
	}
	return nil
}

// runner executes steps against an editor.
type runner struct {
	ed     *editor.Editor
	out    io.Writer
	format export.Format

	// sleep waits for d. Tests replace it to drive a manual clock.
	sleep func(ctx context.Context, d time.Duration) error

	// settleEvery is the polling interval of settle.
	settleEvery time.Duration
}

func newRunner(ed *editor.Editor, out io.Writer, format export.Format) *runner {
	return &runner{
		ed:          ed,
		out:         out,
		format:      format,
		sleep:       sleepContext,
		settleEvery: 10 * time.Millisecond,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// runScript executes every step in order and stops at the first error.
func (r *runner) runScript(ctx context.Context, s *Script) error {
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.run(ctx, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
	}
	return nil
}

// run executes a single step.
func (r *runner) run(ctx context.Context, s Step) error {
	switch s.Action {
	case ActionType:
		return r.ed.Type(s.Text)
	case ActionPaste:
		return r.ed.Paste(clipboard.PlainText(s.Text))
	case ActionPasteMarkdown:
		return r.ed.Paste(clipboard.Markdown(s.Text))
	case ActionMath:
		return r.ed.Execute(command.NameMath, command.Args{
			command.AttrEquation: s.Text,
			command.AttrDisplay:  s.Display,
		})
	case ActionUndo:
		return r.ed.Undo()
	case ActionRedo:
		return r.ed.Redo()
	case ActionSelect:
		return r.ed.Select(s.Start, s.End)
	case ActionWait:
		d, err := time.ParseDuration(s.Wait)
		if err != nil {
			return err
		}
		return r.sleep(ctx, d)
	case ActionSettle:
		return r.settle(ctx)
	case ActionExport:
		f := r.format
		if s.Format != "" {
			var err error
			if f, err = export.ParseFormat(s.Format); err != nil {
				return err
			}
		}
		return r.export(f)
	case ActionStatus:
		st, err := r.ed.Status()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, st)
		return err
	default:
		return fmt.Errorf("%q: %w", s.Action, errUnknownAction)
	}
}

// settle waits until no conversion is pending.
func (r *runner) settle(ctx context.Context) error {
	for {
		st, err := r.ed.Status()
		if err != nil {
			return err
		}
		if st.Pending == "" {
			return nil
		}
		if err := r.sleep(ctx, r.settleEvery); err != nil {
			return err
		}
	}
}

func (r *runner) export(f export.Format) error {
	data, err := r.ed.Export(f)
	if err != nil {
		return err
	}
	if f.IsBinary() {
		_, err = fmt.Fprintf(r.out, "%x\n", data)
		return err
	}
	_, err = r.out.Write(data)
	return err
}

// parseLine turns an interactive command line into a step.
func parseLine(line string) (Step, error) {
	line = strings.TrimSpace(line)
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "type", "t":
		return Step{Action: ActionType, Text: rest}, nil
	case "paste", "p":
		return Step{Action: ActionPaste, Text: rest}, nil
	case "md":
		return Step{Action: ActionPasteMarkdown, Text: rest}, nil
	case "math":
		return Step{Action: ActionMath, Text: rest}, nil
	case "dmath":
		return Step{Action: ActionMath, Text: rest, Display: true}, nil
	case "undo", "u":
		return Step{Action: ActionUndo}, nil
	case "redo", "r":
		return Step{Action: ActionRedo}, nil
	case "select", "sel":
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return Step{}, errors.New("usage: select <start> <end>")
		}
		start, err := strconv.Atoi(fields[0])
		if err != nil {
			return Step{}, fmt.Errorf("select start: %w", err)
		}
		end, err := strconv.Atoi(fields[1])
		if err != nil {
			return Step{}, fmt.Errorf("select end: %w", err)
		}
		return Step{Action: ActionSelect, Start: start, End: end}, nil
	case "wait":
		return Step{Action: ActionWait, Wait: rest}, nil
	case "settle":
		return Step{Action: ActionSettle}, nil
	case "export", "x":
		return Step{Action: ActionExport, Format: rest}, nil
	case "status", "s":
		return Step{Action: ActionStatus}, nil
	default:
		return Step{}, fmt.Errorf("%q: %w", name, errUnknownAction)
	}
}
