package shell

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"

	"github.com/gopherden/redshell/internal/strutil"
)

// Sentinel errors surfaced by the path resolver (C5) and reused by cd
// (C4) for the matching filesystem conditions.
var (
	ErrNotFound        = errors.New("No such file or directory")
	ErrPermissionDenied = errors.New("Permission denied")
	ErrNotADirectory    = errors.New("Not a directory")
)

// ResolvePath finds an executable for cmd, following spec §4.5:
//
//  1. split PATH on ':' and try dir+"/"+cmd for each entry, in order
//  2. if none are executable, test cmd itself as a literal path
//
// The literal-path fallback tests S_ISDIR before access(X_OK), exactly
// as all_bins_function.c's some_errs does: a searchable directory
// (mode 0700) passes X_OK, so checking access first would return a
// directory as though it were an executable. Stat first distinguishes
// an existing directory (ErrPermissionDenied) from an executable
// regular file from nothing existing at all (ErrNotFound).
func ResolvePath(env *Env, cmd string) (string, error) {
	pathVar, _ := env.Get("PATH")
	for _, dir := range strutil.Split(pathVar, ":") {
		candidate := strutil.Concat(strutil.Concat(dir, "/"), cmd)
		if unix.Access(candidate, unix.X_OK) == nil {
			return candidate, nil
		}
	}

	info, err := os.Stat(cmd)
	if err != nil {
		return "", ErrNotFound
	}
	if info.IsDir() {
		return "", ErrPermissionDenied
	}
	if unix.Access(cmd, unix.X_OK) != nil {
		return "", ErrNotFound
	}
	return cmd, nil
}
