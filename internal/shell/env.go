package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/gopherden/redshell/internal/strutil"
)

// Env is the shell's private, ordered, unique-keyed environment table.
// Every entry is a "KEY=VALUE" string; insertion order is preserved and
// is the order env prints entries in. PWD and OLDPWD live only as entries
// in this table — there is no separate mirror to keep in sync.
type Env struct {
	entries []string
}

// NewEnv snapshots the process's inherited environment into a freshly
// owned table. Every string is deep-copied.
func NewEnv() *Env {
	inherited := os.Environ()
	entries := make([]string, len(inherited))
	for i, e := range inherited {
		entries[i] = strutil.Concat(e, "")
	}
	return &Env{entries: entries}
}

// Clone returns a deep copy of e. Built-ins running as one side of a pipe
// or redirect stage operate on a clone so their mutations die with the
// stage instead of reaching the parent shell (spec §4.6, §9).
func (e *Env) Clone() *Env {
	entries := make([]string, len(e.entries))
	copy(entries, e.entries)
	return &Env{entries: entries}
}

// Entries returns the table's entries in insertion order. The returned
// slice must be treated as read-only; callers that need an execve-style
// snapshot should copy it.
func (e *Env) Entries() []string {
	return e.entries
}

func keyOf(entry string) (string, bool) {
	key, _, ok := strutil.SplitFirst(entry, '=')
	return key, ok
}

// IndexOf returns the position of key's entry, or -1 if absent.
func (e *Env) IndexOf(key string) int {
	for i, entry := range e.entries {
		if k, ok := keyOf(entry); ok && k == key {
			return i
		}
	}
	return -1
}

// Get returns key's value and whether it was present.
func (e *Env) Get(key string) (string, bool) {
	idx := e.IndexOf(key)
	if idx < 0 {
		return "", false
	}
	_, value, _ := strutil.SplitFirst(e.entries[idx], '=')
	return value, true
}

// Set inserts key=value, replacing the existing entry at its original
// index if key is already present, or appending otherwise.
func (e *Env) Set(key, value string) {
	entry := strutil.Concat(strutil.Concat(key, "="), value)
	if idx := e.IndexOf(key); idx >= 0 {
		e.entries[idx] = entry
		return
	}
	e.entries = append(e.entries, entry)
}

// Unset removes key's entry. It reports whether key was present.
func (e *Env) Unset(key string) bool {
	idx := e.IndexOf(key)
	if idx < 0 {
		return false
	}
	e.entries = append(e.entries[:idx], e.entries[idx+1:]...)
	return true
}

// PrintAll writes every entry, newline-terminated, to w in insertion order.
func (e *Env) PrintAll(w io.Writer) error {
	for _, entry := range e.entries {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return err
		}
	}
	return nil
}
