package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ErrExitRequested is returned by the exit built-in. The executor and
// REPL are the only places that look for it; everywhere else it is an
// ordinary error.
var ErrExitRequested = errors.New("exit requested")

// BuiltinNames lists the fixed table of built-ins (spec §4.4). Any
// command whose name is not in this table is external.
var BuiltinNames = map[string]bool{
	"cd":       true,
	"exit":     true,
	"env":      true,
	"setenv":   true,
	"unsetenv": true,
}

// Builtins implements the five built-in commands against an Env.
type Builtins struct{}

// Run dispatches name to its implementation. status is the exit status
// to report for the segment; err is ErrExitRequested for exit, an error
// for a name outside the built-in table, and nil otherwise.
func (b *Builtins) Run(name string, args []string, env *Env, stdout, stderr io.Writer) (status int, err error) {
	switch name {
	case "exit":
		return 0, ErrExitRequested
	case "env":
		return b.env(env, stdout), nil
	case "setenv":
		return b.setenv(env, args, stdout, stderr), nil
	case "unsetenv":
		return b.unsetenv(env, args, stderr), nil
	case "cd":
		return b.cd(env, args, stderr), nil
	default:
		return 84, fmt.Errorf("%s: not a builtin", name)
	}
}

func (b *Builtins) env(env *Env, stdout io.Writer) int {
	env.PrintAll(stdout)
	return 0
}

func (b *Builtins) setenv(env *Env, args []string, stdout, stderr io.Writer) int {
	if len(args) == 1 {
		env.PrintAll(stdout)
		return 1
	}
	if len(args) > 3 {
		fmt.Fprintln(stderr, "setenv: Too many arguments.")
		return 1
	}

	key := args[1]
	if len(key) == 0 || !isAlphaByte(key[0]) {
		fmt.Fprintln(stderr, "setenv: Variable name must begin with a letter.")
		return 1
	}
	if !isAlphanumeric(key) {
		fmt.Fprintln(stderr, "setenv: Variable name must contain alphanumeric characters.")
		return 1
	}

	value := ""
	if len(args) > 2 {
		value = args[2]
	}
	env.Set(key, value)
	return 0
}

func (b *Builtins) unsetenv(env *Env, args []string, stderr io.Writer) int {
	if len(args) == 1 {
		fmt.Fprintln(stderr, "unsetenv: Too few arguments.")
		return 1
	}

	firstPresent := false
	for i, key := range args[1:] {
		present := env.Unset(key)
		if i == 0 {
			firstPresent = present
		}
	}
	if !firstPresent {
		return 1
	}
	return 0
}

func (b *Builtins) cd(env *Env, args []string, stderr io.Writer) int {
	if len(args) > 2 {
		fmt.Fprintln(stderr, "cd: Too many arguments")
		return 1
	}

	if len(args) == 1 {
		home, ok := env.Get("HOME")
		if !ok {
			fmt.Fprintln(stderr, "cd: No home directory.")
			return 1
		}
		prevPWD := currentPWD(env)
		if err := os.Chdir(home); err != nil {
			fmt.Fprintf(stderr, "%s: No such file or directory.\n", home)
			return 1
		}
		env.Set("OLDPWD", prevPWD)
		env.Set("PWD", home)
		return 0
	}

	if args[1] == "-" {
		oldpwd, ok := env.Get("OLDPWD")
		if !ok {
			fmt.Fprintln(stderr, ": No such file or directory.")
			// REDESIGN (spec §9 / SPEC_FULL.md §13): the source returns 0
			// here despite printing an error; we return non-zero instead.
			return 1
		}
		return b.chdirAndUpdate(env, oldpwd, stderr)
	}

	target := args[1]
	if err := checkCdTarget(target); err != nil {
		fmt.Fprintf(stderr, "%s: %s.\n", target, err)
		return 1
	}
	return b.chdirAndUpdate(env, target, stderr)
}

// checkCdTarget runs the existence / directory-ness / readability checks
// spec §4.4 items 4-6 require, in that priority order, reusing C5's
// sentinel errors so cd and the path resolver report filesystem
// conditions the same way.
func checkCdTarget(target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return ErrNotFound
	}
	if !info.IsDir() {
		return ErrNotADirectory
	}
	if unix.Access(target, unix.R_OK) != nil {
		return ErrPermissionDenied
	}
	return nil
}

// chdirAndUpdate performs the chdir, sets OLDPWD to the pre-chdir PWD
// entry (or the working directory when PWD is unset), and sets PWD to a
// getcwd()-equivalent result taken after the chdir.
func (b *Builtins) chdirAndUpdate(env *Env, target string, stderr io.Writer) int {
	prevPWD := currentPWD(env)
	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(stderr, "%s: No such file or directory.\n", target)
		return 1
	}
	newCwd, err := os.Getwd()
	if err != nil {
		newCwd = target
	}
	env.Set("OLDPWD", prevPWD)
	env.Set("PWD", newCwd)
	return 0
}

func currentPWD(env *Env) string {
	if pwd, ok := env.Get("PWD"); ok {
		return pwd
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return ""
}

func isAlphaByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isAlnumByte(b byte) bool {
	return isAlphaByte(b) || (b >= '0' && b <= '9')
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isAlnumByte(s[i]) {
			return false
		}
	}
	return true
}
