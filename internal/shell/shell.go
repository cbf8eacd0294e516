package shell

import (
	"bufio"
	"io"

	"github.com/gopherden/redshell/internal/shell/parser"
)

// Prompt is printed before each line read from a terminal (spec §4.7, §6).
const Prompt = "[Redshell]$> "

// Shell drives the read/parse/execute loop. It owns the Env for the
// process's lifetime; nothing else holds a reference to it.
type Shell struct {
	Env      *Env
	Executor *Executor

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// isTTY reports whether the prompt should be printed. Set from
	// golang.org/x/term.IsTerminal by the caller at construction time;
	// Shell itself does no terminal detection.
	isTTY bool
}

// New builds a Shell reading from in and writing to out/errOut. isTTY
// gates prompt printing; the cmd/redshell entry point determines it via
// golang.org/x/term.IsTerminal on stdin's file descriptor.
func New(in io.Reader, out, errOut io.Writer, isTTY bool) *Shell {
	return &Shell{
		Env:      NewEnv(),
		Executor: NewExecutor(),
		in:       bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
		isTTY:    isTTY,
	}
}

// Run loops reading lines, parsing, and executing until EOF or an exit
// built-in, per spec §4.7. It always returns 0: EOF and unreached
// programs in the body (ParseEmpty, ArityError, NotFound, ...) are all
// locally recovered and never change the shell's own exit status.
func (s *Shell) Run() int {
	for {
		if s.isTTY {
			io.WriteString(s.out, Prompt)
		}

		line, err := s.in.ReadString('\n')
		if line == "\n" {
			if err == nil {
				continue
			}
		}
		if line != "" {
			segs := parser.Parse(line)
			if runErr := s.Executor.Run(segs, s.Env, s.in, s.out, s.errOut); runErr == ErrExitRequested {
				return 0
			}
		}
		if err == io.EOF {
			return 0
		}
	}
}
