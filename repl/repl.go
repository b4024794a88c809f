// Package repl implements the interactive read/evaluate loop. The core
// pipeline knows nothing about it; the loop talks to the interpreter
// only through its Evaluate contract, buffering lines until Evaluate
// says the submission is complete.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tliron/commonlog"

	"tally/config"
	"tally/interp"
)

var log = commonlog.GetLogger("tally.repl")

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Repl drives an interpreter from a line source. Input and output are
// injected so tests and batch harnesses can run the loop unmodified.
type Repl struct {
	interp *interp.Interpreter
	cfg    *config.Config
	in     io.Reader
	out    io.Writer

	buffer strings.Builder // pending multi-line input
}

// New creates a loop around an interpreter.
func New(i *interp.Interpreter, cfg *config.Config, in io.Reader, out io.Writer) *Repl {
	return &Repl{interp: i, cfg: cfg, in: in, out: out}
}

// Run reads lines until end of input or an exit command. Each complete
// submission is evaluated; when Evaluate asks to retain the buffer the
// next line is appended instead, with the continuation prompt shown.
func (r *Repl) Run() error {
	fmt.Fprintln(r.out, r.cfg.Repl.Welcome)

	scanner := bufio.NewScanner(r.in)
	for {
		if r.buffer.Len() == 0 {
			fmt.Fprint(r.out, promptStyle.Render(r.cfg.Repl.Prompt))
		} else {
			fmt.Fprint(r.out, promptStyle.Render(r.cfg.Repl.ContinuePrompt))
		}

		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		if r.buffer.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "":
				continue
			case "exit", "quit":
				fmt.Fprintln(r.out, "bye")
				return scanner.Err()
			}
		}
		if strings.TrimSpace(line) == "clear" {
			r.buffer.Reset()
			continue
		}

		if r.buffer.Len() > 0 {
			r.buffer.WriteString("\n")
		}
		r.buffer.WriteString(line)

		r.evalBuffer()
	}

	return scanner.Err()
}

// evalBuffer submits the pending buffer, clearing or retaining it as
// the interpreter instructs.
func (r *Repl) evalBuffer() {
	input := r.buffer.String()

	result, err := r.interp.Evaluate(input)
	if err != nil {
		log.Infof("evaluate failed: %s", err)
		r.buffer.Reset()
		fmt.Fprintln(r.out, errorStyle.Render(err.Error()))
		return
	}

	if result.Retain {
		// Incomplete submission: keep the buffer, ask for more.
		return
	}

	r.buffer.Reset()
	if result.Output != "" {
		fmt.Fprintln(r.out, resultStyle.Render(result.Output))
	}
}
