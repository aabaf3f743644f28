package uploader

import (
	"context"

	"github.com/dmitrijs2005/gitdrop/internal/github"
)

// RemoteAPI is the part of *github.Client the uploader drives.
type RemoteAPI interface {
	GetUser(ctx context.Context) (*github.User, error)
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	CreateRepository(ctx context.Context, req github.CreateRepositoryRequest) (*github.Repository, error)
	GetContent(ctx context.Context, owner, repo, path string) (*github.Content, error)
	PutContent(ctx context.Context, owner, repo, path string, req github.PutContentRequest) (*github.PutContentResponse, error)
}

var _ RemoteAPI = (*github.Client)(nil)
