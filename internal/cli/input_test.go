package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetToken(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(" ghp_x \n"), nil }

	var out bytes.Buffer
	tok, err := GetToken(&out)
	require.NoError(t, err)
	assert.Equal(t, "ghp_x", tok)
	assert.NotContains(t, out.String(), "ghp_x")
}

func TestGetToken_Error(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }

	var out bytes.Buffer
	_, err := GetToken(&out)
	assert.Error(t, err)
}
