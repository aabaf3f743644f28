package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fileAttachment presents a local file as a chat attachment.
type fileAttachment struct {
	path string
	name string
	size int64
}

func newFileAttachment(path string) (*fileAttachment, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &fileAttachment{path: path, name: filepath.Base(path), size: fi.Size()}, nil
}

func (f *fileAttachment) Name() string { return f.name }
func (f *fileAttachment) Size() int64  { return f.size }

func (f *fileAttachment) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(f.path)
}
