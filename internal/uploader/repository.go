package uploader

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gitdrop/internal/github"
)

const (
	RepoDescription = "File storage repository created by gitdrop"
	Branch          = "main"
)

// RepoName is the storage repository of a chat account.
func RepoName(accountID int64) string {
	return fmt.Sprintf("git-%d-files", accountID)
}

// EnsureRepository creates owner/repo when it cannot be fetched and waits
// delay for the initial commit to land. Any lookup failure, not only 404,
// is treated as absence.
func EnsureRepository(ctx context.Context, api RemoteAPI, owner, repo string, delay time.Duration) (bool, error) {

	if _, err := api.GetRepository(ctx, owner, repo); err == nil {
		return false, nil
	}

	_, err := api.CreateRepository(ctx, github.CreateRepositoryRequest{
		Name:        repo,
		Description: RepoDescription,
		Private:     false,
		AutoInit:    true,
	})
	if err != nil {
		return false, err
	}

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case <-t.C:
		}
	}

	return true, nil
}
