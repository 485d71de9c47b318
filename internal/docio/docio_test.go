package docio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
)

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xml")
	require.NoError(t, os.WriteFile(path, []byte("<ThreadType/>"), 0o600))

	got, err := Read(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "<ThreadType/>", got)
}

func TestRead_Stdin(t *testing.T) {
	got, err := Read(Stdio, strings.NewReader("<ThreadType/>"))
	require.NoError(t, err)
	assert.Equal(t, "<ThreadType/>", got)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.xml"), nil)
	require.Error(t, err)
	assert.True(t, tterrors.IsCategory(err, tterrors.CategoryFileSystem))
}

func TestWrite_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, Write(path, "new", nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(outputPerm), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWrite_Stdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(Stdio, "doc", &buf))
	assert.Equal(t, "doc", buf.String())
}

func TestWrite_MissingDirectory(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "nope", "out.xml"), "doc", nil)
	require.Error(t, err)
	assert.True(t, tterrors.IsCategory(err, tterrors.CategoryFileSystem))
}
