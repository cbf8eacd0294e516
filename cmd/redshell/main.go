// Command redshell is a minimal POSIX-style interactive shell.
package main

import (
	"log"
	"os"

	"golang.org/x/term"

	"github.com/gopherden/redshell/internal/shell"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	configureLogging()

	status := 0
	root := &cobra.Command{
		Use:           "redshell",
		Short:         "A minimal POSIX-style interactive shell",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			status = runShell()
			return nil
		},
		// Flags such as -h reach the argument check as plain arguments.
		DisableFlagParsing: true,
	}

	if err := root.Execute(); err != nil {
		// Any argument at all violates spec §6's strict argc check.
		return 84
	}
	return status
}

func runShell() int {
	isTTY := term.IsTerminal(int(os.Stdin.Fd()))
	log.Printf("starting shell: tty=%v", isTTY)
	s := shell.New(os.Stdin, os.Stdout, os.Stderr, isTTY)
	status := s.Run()
	log.Printf("shell exited: status=%d", status)
	return status
}

// configureLogging wires up internal diagnostics, never the shell's own
// protocol output (which always goes through stdout/stderr directly).
// There is no flag to enable it: the zero-argument invariant rules one
// out, so REDSHELL_DEBUG is read once at startup instead.
func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	if os.Getenv("REDSHELL_DEBUG") == "" {
		log.SetOutput(discard{})
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
