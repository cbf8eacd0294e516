package utils

import (
	"fmt"
	"os"
)

// RedirectFlags maps a shell redirect kind ("w" for truncating '>', "a"
// for appending '>>') to the os flags and permission bits the executor
// opens the target file with (spec §4.6: O_WRONLY | O_CREAT |
// (O_TRUNC | O_APPEND), mode 0644).
func RedirectFlags(kind string) (int, os.FileMode, error) {
	switch kind {
	case "w":
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, 0644, nil
	case "a":
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND, 0644, nil
	default:
		return 0, 0, fmt.Errorf("invalid redirect kind: %s (valid kinds: w, a)", kind)
	}
}
