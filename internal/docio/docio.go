// Package docio reads thread documents from files or stdin and writes them
// atomically to files or stdout.
package docio

import (
	"io"
	"os"
	"path/filepath"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
)

// Stdio is the path that selects stdin for reading and stdout for writing.
const Stdio = "-"

const outputPerm = 0o644

// Read returns the document at path, or all of stdin when path is "-".
func Read(path string, stdin io.Reader) (string, error) {
	if path == Stdio {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", tterrors.ReadFailed("stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", tterrors.ReadFailed(path, err)
	}
	return string(data), nil
}

// Write stores text at path, or writes it to stdout when path is "-".
// Files are replaced atomically: the content goes to a temporary file in
// the same directory which is then renamed over the target, so readers never
// observe a partially written document.
func Write(path, text string, stdout io.Writer) error {
	if path == Stdio {
		if _, err := io.WriteString(stdout, text); err != nil {
			return tterrors.WriteFailed("stdout", err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return tterrors.WriteFailed(path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		cleanup()
		return tterrors.WriteFailed(path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return tterrors.WriteFailed(path, err)
	}
	// #nosec G302 -- thread tables are shared with the CAD application
	if err := os.Chmod(tmpPath, outputPerm); err != nil {
		cleanup()
		return tterrors.WriteFailed(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return tterrors.WriteFailed(path, err)
	}
	return nil
}
