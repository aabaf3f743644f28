package uploader

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gitdrop/internal/github"
	"github.com/dmitrijs2005/gitdrop/internal/github/githubtest"
	"github.com/dmitrijs2005/gitdrop/internal/store"
	"github.com/stretchr/testify/require"
)

const (
	testToken = "ghp_test"
	testLogin = "octo"
)

type fakeAttachment struct {
	name   string
	size   int64
	data   []byte
	opened bool
	err    error
}

func newAttachment(name string, data []byte) *fakeAttachment {
	return &fakeAttachment{name: name, size: int64(len(data)), data: data}
}

func (a *fakeAttachment) Name() string { return a.name }
func (a *fakeAttachment) Size() int64  { return a.size }

func (a *fakeAttachment) Open(context.Context) (io.ReadCloser, error) {
	a.opened = true
	if a.err != nil {
		return nil, a.err
	}
	return io.NopCloser(bytes.NewReader(a.data)), nil
}

func newGitHub(t *testing.T) (*githubtest.Server, *github.Client) {
	t.Helper()
	gh := githubtest.NewServer(t)
	gh.AddUser(testToken, testLogin)
	return gh, github.NewClient(gh.URL)
}

func openStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(dir, "gitdrop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// activeCredentials returns an in-memory credential store holding testToken.
func activeCredentials(t *testing.T, client *github.Client) *CredentialStore {
	t.Helper()
	c := NewCredentialStore(client, nil, "", nil)
	_, err := c.Set(context.Background(), testToken)
	require.NoError(t, err)
	return c
}
