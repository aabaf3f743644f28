package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAttachment(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(p, []byte("12345"), 0o600))

	att, err := newFileAttachment(p)
	require.NoError(t, err)
	assert.Equal(t, "data.bin", att.Name())
	assert.Equal(t, int64(5), att.Size())

	rc, err := att.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("12345"), b)
}

func TestFileAttachment_Errors(t *testing.T) {
	_, err := newFileAttachment(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, err = newFileAttachment(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}
