package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gitdrop/internal/github"
	"github.com/dmitrijs2005/gitdrop/internal/uploader"
	"github.com/stretchr/testify/assert"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no token", uploader.ErrNoToken, msgNoToken},
		{"invalid token", fmt.Errorf("%w: %w", uploader.ErrInvalidToken, errors.New("Bad credentials")), msgInvalidToken},
		{"rate limited", uploader.ErrRateLimited, msgRateLimit},
		{
			"token not saved",
			fmt.Errorf("%w: %w", uploader.ErrTokenNotSaved, errors.New("sql: database is closed")),
			"GitHub token is valid but was not stored!\ngithub token could not be saved: sql: database is closed",
		},
		{"no file", uploader.ErrNoFile, msgNoFile},
		{"too large", uploader.ErrFileTooLarge, msgFileTooLarge},
		{"invalid filename", uploader.ErrInvalidFilename, msgInvalidFilename},
		{
			"remote failure shows cause text",
			&uploader.UploadFailedError{Step: uploader.StepResolveUser, Err: &github.APIError{StatusCode: 404, Message: "Not Found"}},
			"Upload failed: Not Found",
		},
		{
			"remote rate limit",
			&uploader.UploadFailedError{Step: uploader.StepResolveUser, Err: &github.RateLimitError{StatusCode: 403}},
			"Upload failed: rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messageFor(tt.err))
		})
	}
}
