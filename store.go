package authstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// timestampLayout is RFC 3339 with millisecond precision; saves stamp
// updatedAt in UTC using it.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// fileName derives the state file name for a handle, replacing path
// separators so a handle can never escape the state directory.
func fileName(handle string) string {
	sanitized := strings.NewReplacer("/", "_", "\\", "_").Replace(handle)
	return sanitized + ".json"
}

// FilePath returns the file where state for handle is stored. It never reads
// or writes state itself, and fails with ErrEmptyHandle when the handle is
// empty after trimming.
func FilePath(handle string, opts ...Option) (string, error) {
	const op = "FilePath"

	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "", newValidationError(op, ErrEmptyHandle)
	}

	s, err := resolve(op, opts)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.stateDir, fileName(handle)), nil
}

// Load reads, normalizes, and validates the stored state for handle.
//
// Candidates are consulted in order: the primary state directory first, then
// each legacy directory. The first candidate that exists and parses to a
// valid record wins; the rest are ignored. Load returns (nil, nil) when the
// handle is empty, when no candidate has state, and when the only state found
// was corrupt (after quarantining it). Filesystem failures other than a
// missing file propagate.
func Load(handle string, opts ...Option) (*AuthState, error) {
	const op = "Load"

	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, nil
	}

	s, err := resolve(op, opts)
	if err != nil {
		return nil, err
	}

	for _, dir := range candidateDirs(s) {
		state, err := readState(filepath.Join(dir, fileName(handle)), s)
		if err != nil {
			return nil, newFilesystemError(op, err)
		}
		if state != nil {
			return state, nil
		}
	}
	return nil, nil
}

// Save normalizes state and writes it to the primary location for handle,
// fully replacing any existing file. The stored record's handle is forced to
// the trimmed input handle and its updatedAt to the current time, regardless
// of what the caller supplied. Intermediate directories are created as
// needed.
func Save(handle string, state *AuthState, opts ...Option) error {
	const op = "Save"

	handle = strings.TrimSpace(handle)
	if handle == "" {
		return newValidationError(op, ErrEmptyHandle)
	}

	s, err := resolve(op, opts)
	if err != nil {
		return err
	}

	var in AuthState
	if state != nil {
		in = *state
	}
	record := in.withDefaults()
	record.Handle = handle
	record.UpdatedAt = s.now().UTC().Format(timestampLayout)

	if err := os.MkdirAll(s.stateDir, 0o700); err != nil {
		return newFilesystemError(op, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return newValidationError(op, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filepath.Join(s.stateDir, fileName(handle)), data, 0o600); err != nil {
		return newFilesystemError(op, err)
	}
	return nil
}

// Clear removes the stored state for handle from the primary location and
// every legacy directory. It reports whether at least one file was actually
// removed; a handle with no state anywhere yields (false, nil). The first
// deletion failure other than "already absent" aborts the remaining
// candidates.
func Clear(handle string, opts ...Option) (bool, error) {
	const op = "Clear"

	handle = strings.TrimSpace(handle)
	if handle == "" {
		return false, nil
	}

	s, err := resolve(op, opts)
	if err != nil {
		return false, err
	}

	removed := false
	for _, dir := range candidateDirs(s) {
		err := os.Remove(filepath.Join(dir, fileName(handle)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, newFilesystemError(op, err)
		}
		removed = true
	}
	return removed, nil
}

// candidateDirs lists the directories consulted for a handle, primary first.
func candidateDirs(s *settings) []string {
	return append([]string{s.stateDir}, s.legacyStateDirs...)
}

// readState reads one candidate file. A missing file and a quarantined
// corrupt file both yield (nil, nil) so the caller can fall through to the
// next candidate; so does a record that normalizes to nothing usable.
func readState(path string, s *settings) (*AuthState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var state AuthState
	if err := json.Unmarshal(data, &state); err != nil {
		quarantine(path, s)
		return nil, nil
	}
	return state.normalized(), nil
}

// quarantine renames an unparseable state file aside so it is preserved for
// inspection. Best effort: a rename failure is logged and swallowed.
func quarantine(path string, s *settings) {
	target := fmt.Sprintf("%s.corrupt-%d", path, s.now().UnixMilli())
	if err := os.Rename(path, target); err != nil {
		s.logger.Warn("failed to quarantine corrupt auth state file",
			"path", path,
			"error", err,
		)
		return
	}
	s.logger.Warn("quarantined corrupt auth state file",
		"path", path,
		"quarantined", target,
	)
}
