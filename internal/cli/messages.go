package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gitdrop/internal/uploader"
)

const (
	msgWelcome         = "gitdrop (type 'help' for commands)"
	msgHelp            = "Available commands: ghset [token], ghupload <path>, ghunset, whoami, exit"
	msgNoToken         = "GitHub token not configured!\nGet your token at: https://github.com/settings/tokens\nRequired permissions: repo (full control)\n\n  ghset <token>"
	msgTokenSet        = "GitHub token configured successfully!"
	msgTokenSetAs      = "Authenticated as %s"
	msgInvalidToken    = "Invalid GitHub token!"
	msgTokenNotSaved   = "GitHub token is valid but was not stored!\n%s"
	msgTokenCleared    = "GitHub token removed."
	msgNoFile          = "Attach a file to upload it!\n\n  ghupload <path>"
	msgUploading       = "Uploading file to GitHub..."
	msgUploadSuccess   = "File uploaded successfully!\n\nFile: %s\nLink:\n%s"
	msgUploadError     = "Upload failed: %s"
	msgRequestError    = "Request failed: %s"
	msgFileTooLarge    = "File too large!\nGitHub has a 100MB limit for single files"
	msgInvalidFilename = "Invalid filename!"
	msgRateLimit       = "Rate limit exceeded!\nPlease wait before uploading more files"
	msgBye             = "Bye!"
	msgUnknownCommand  = "Unknown command:"
)

// messageFor renders a failed command as user-facing text. This is the only
// place errors are flattened to strings.
func messageFor(err error) string {
	var failed *uploader.UploadFailedError

	switch {
	case errors.Is(err, uploader.ErrNoToken):
		return msgNoToken
	case errors.Is(err, uploader.ErrInvalidToken):
		return msgInvalidToken
	case errors.Is(err, uploader.ErrTokenNotSaved):
		return fmt.Sprintf(msgTokenNotSaved, err.Error())
	case errors.Is(err, uploader.ErrRateLimited):
		return msgRateLimit
	case errors.Is(err, uploader.ErrNoFile):
		return msgNoFile
	case errors.Is(err, uploader.ErrFileTooLarge) && !errors.As(err, &failed):
		return msgFileTooLarge
	case errors.Is(err, uploader.ErrInvalidFilename):
		return msgInvalidFilename
	default:
		return fmt.Sprintf(msgUploadError, err.Error())
	}
}
