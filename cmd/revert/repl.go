package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dshills/revert/internal/history"
	"github.com/dshills/revert/internal/history/storage"
)

const prompt = "> "

const helpText = `commands:
  set <text>   replace the current value
  show         print the current value
  save         push the current value onto the undo stack
  undo         restore the most recent save
  redo         reapply the most recently undone value
  status       print value, stack depths and policy
  clear        drop both stacks
  quit         leave`

// errQuit ends the session without error.
var errQuit = errors.New("quit")

// session drives a redoable string from text commands.
type session struct {
	hist *history.Redoable[string]
	log  *slog.Logger
}

func newSession(h *history.Redoable[string], logger *slog.Logger) *session {
	return &session{hist: h, log: logger}
}

// exec runs one command line and returns the text to show.
func (s *session) exec(line string) (string, error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	if verb != "" {
		s.log.Debug("command", "verb", verb)
	}

	switch strings.ToLower(verb) {
	case "":
		return "", nil
	case "set":
		s.hist.Set(arg)
		return "", nil
	case "show", "get":
		return s.hist.Get(), nil
	case "save":
		if s.hist.Save() {
			return "saved", nil
		}
		if s.hist.Policy().Name() == storage.NameRing {
			s.log.Warn("undo stack full, oldest save evicted", "capacity", s.hist.MaxSaves())
			return "saved (evicted oldest save)", nil
		}
		s.log.Warn("undo stack full, most recent save overwritten", "capacity", s.hist.MaxSaves())
		return "saved (overwrote most recent save)", nil
	case "undo":
		if !s.hist.Undo() {
			return "nothing to undo", nil
		}
		return s.hist.Get(), nil
	case "redo":
		if !s.hist.Redo() {
			return "nothing to redo", nil
		}
		return s.hist.Get(), nil
	case "status":
		return s.status(), nil
	case "clear":
		s.hist.Clear()
		return "cleared", nil
	case "help", "?":
		return helpText, nil
	case "quit", "exit", "q":
		return "", errQuit
	default:
		return "", fmt.Errorf("unknown command %q (try help)", verb)
	}
}

func (s *session) status() string {
	return fmt.Sprintf("value=%q saves=%d/%d edits=%d/%d policy=%v",
		s.hist.Get(),
		s.hist.Saves(), s.hist.MaxSaves(),
		s.hist.Edits(), s.hist.MaxEdits(),
		s.hist.Policy())
}

// run reads commands from in until quit, end of input or ctx is done.
func (s *session) run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			res, err := s.exec(line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			if res != "" {
				fmt.Fprintln(out, res)
			}
		}
	}
}
