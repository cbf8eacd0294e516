package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/gopherden/redshell/internal/shell/parser"
	"github.com/gopherden/redshell/internal/utils"
)

// Executor runs a parsed segment list against an Env, following spec
// §4.6. Go has no raw fork(); external commands get their isolation
// from os/exec.Cmd's own process creation, and built-ins running inside
// a pipe or redirect stage get theirs from Env.Clone() (§9, §13).
type Executor struct {
	Builtins *Builtins
}

// NewExecutor returns an Executor ready to dispatch the fixed built-in
// table (C4) alongside external commands.
func NewExecutor() *Executor {
	return &Executor{Builtins: &Builtins{}}
}

// Run executes every segment in order against env, stdin, stdout and
// stderr. Segments are independent: nothing pipes across a ';'. Run
// stops and returns early only when a segment yields ErrExitRequested.
func (x *Executor) Run(segs []parser.Segment, env *Env, stdin io.Reader, stdout, stderr io.Writer) error {
	for _, seg := range segs {
		if err := x.runSegment(seg, env, stdin, stdout, stderr); err != nil {
			return err
		}
	}
	return nil
}

func (x *Executor) runSegment(seg parser.Segment, env *Env, stdin io.Reader, stdout, stderr io.Writer) error {
	switch seg.Kind {
	case parser.Plain:
		return x.runPlain(seg, env, stdin, stdout, stderr)
	case parser.Pipe:
		return x.runPipe(seg, env, stdin, stdout, stderr)
	case parser.Redirect, parser.RedirectAppend:
		return x.runRedirect(seg, env, stdin, stdout, stderr)
	default:
		return nil
	}
}

// runPlain runs a non-composed segment. A built-in here runs in-parent
// (spec §4.6): it mutates env directly, no clone.
func (x *Executor) runPlain(seg parser.Segment, env *Env, stdin io.Reader, stdout, stderr io.Writer) error {
	if seg.LeadingEmpty || len(seg.Argv) == 0 {
		fmt.Fprintln(stderr, "Invalid null command.")
		return nil
	}
	return x.runStage(seg.Argv, env, stdin, stdout, stderr)
}

// runStage dispatches one side of a composed segment, or a whole plain
// segment, to its built-in or external implementation. A non-nil error
// is only ever ErrExitRequested bubbling up from the exit built-in.
func (x *Executor) runStage(argv []string, env *Env, stdin io.Reader, stdout, stderr io.Writer) error {
	name := argv[0]
	if BuiltinNames[name] {
		_, err := x.Builtins.Run(name, argv, env, stdout, stderr)
		return err
	}
	return x.runExternal(argv, env, stdin, stdout, stderr)
}

// runExternal resolves argv[0] on PATH and runs it as a child process.
// Exit status is observed (Cmd.Run waits for it) but never propagated
// to the shell's own exit status, per spec §6.
func (x *Executor) runExternal(argv []string, env *Env, stdin io.Reader, stdout, stderr io.Writer) error {
	path, err := ResolvePath(env, argv[0])
	if err != nil {
		if err == ErrPermissionDenied {
			fmt.Fprintf(stderr, "%s: Permission denied.\n", argv[0])
		} else {
			fmt.Fprintf(stderr, "%s: Command not found.\n", argv[0])
		}
		return nil
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Env = env.Entries()
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if runErr := cmd.Run(); runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The child never reached execve (spawn/exec failure); the
			// source's equivalent exits the forked child with 84.
			fmt.Fprintf(stderr, "%s: Command not found.\n", argv[0])
		}
	}
	return nil
}

// runPipe wires the left side's stdout to the right side's stdin
// through a real OS pipe, running both sides concurrently and waiting
// for the upstream side first (spec §5). Both sides run against an
// Env.Clone(): a built-in on either side is effect-local to the stage,
// and an exit built-in there ends only its own stage, not the shell.
func (x *Executor) runPipe(seg parser.Segment, env *Env, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(seg.Argv) == 0 || len(seg.RhsArgv) == 0 {
		fmt.Fprintln(stderr, "Invalid null command.")
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil
	}

	leftDone := make(chan error, 1)
	rightDone := make(chan error, 1)

	go func() {
		defer w.Close()
		leftDone <- x.runStage(seg.Argv, env.Clone(), stdin, w, stderr)
	}()

	go func() {
		defer r.Close()
		rightDone <- x.runStage(seg.RhsArgv, env.Clone(), r, stdout, stderr)
	}()

	<-leftDone
	<-rightDone
	return nil
}

// runRedirect opens the target file and runs the left command with its
// output wired to that file. Only the stage's own writer changes; the
// shell's real stdout is never touched, so it needs no restoring
// (spec §5, property 8 holds by construction).
func (x *Executor) runRedirect(seg parser.Segment, env *Env, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(seg.Argv) == 0 {
		fmt.Fprintln(stderr, "Invalid null command.")
		return nil
	}
	if len(seg.RhsArgv) == 0 {
		fmt.Fprintln(stderr, "Missing name for redirect.")
		return nil
	}

	target := seg.RhsArgv[0]
	redirectKind := "w"
	if seg.Kind == parser.RedirectAppend {
		redirectKind = "a"
	}
	flag, perm, err := utils.RedirectFlags(redirectKind)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(target, flag, perm)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", target, describeOpenErr(err))
		return nil
	}
	defer f.Close()

	// Like a pipe stage, the redirected built-in is effect-local: an exit
	// here ends only the stage.
	x.runStage(seg.Argv, env.Clone(), stdin, f, stderr)
	return nil
}

func describeOpenErr(err error) string {
	switch {
	case errors.Is(err, syscall.ENOTDIR):
		return "Not a directory"
	case errors.Is(err, os.ErrPermission):
		return "Permission denied"
	case errors.Is(err, os.ErrNotExist):
		return "No such file or directory"
	default:
		return err.Error()
	}
}
