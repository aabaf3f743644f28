package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gitdrop/internal/uploader"
)

// getToken is swapped in tests to avoid touching the terminal.
var getToken = GetToken

// SetToken validates and stores a token given inline or typed at a hidden
// prompt. The token is never printed.
func (a *App) SetToken(ctx context.Context, arg string) error {

	token := arg
	if token == "" {
		var err error
		token, err = getToken(a.out)
		if err != nil {
			printlnFn(messageFor(err))
			return err
		}
	}

	if strings.TrimSpace(token) == "" {
		printlnFn(msgNoToken)
		return uploader.ErrNoToken
	}

	login, err := a.creds.Set(ctx, token)
	if err != nil {
		printlnFn(messageFor(err))
		return err
	}

	printlnFn(msgTokenSet)
	printlnFn(fmt.Sprintf(msgTokenSetAs, login))
	return nil
}

func (a *App) UnsetToken(ctx context.Context) error {
	if err := a.creds.Clear(ctx); err != nil {
		printlnFn(fmt.Sprintf(msgRequestError, err.Error()))
		return err
	}
	printlnFn(msgTokenCleared)
	return nil
}

// Upload sends the file at path to the storage repository. An empty path
// means no file was attached.
func (a *App) Upload(ctx context.Context, path string) error {

	req := uploader.UploadRequest{RequesterID: a.config.AccountID}

	if path != "" {
		att, err := newFileAttachment(path)
		if err != nil {
			a.log.Debug(ctx, "attachment unavailable", "error", err)
			printlnFn(msgNoFile)
			return uploader.ErrNoFile
		}
		req.Attachment = att
	}

	if a.hasToken() && req.Attachment != nil && req.Attachment.Size() <= uploader.MaxFileSize {
		printlnFn(msgUploading)
	}

	res, err := a.uploader.Upload(ctx, req)
	if err != nil {
		printlnFn(messageFor(err))
		return err
	}

	printlnFn(fmt.Sprintf(msgUploadSuccess, res.Filename, res.URL))
	return nil
}

// WhoAmI prints the login of the active token.
func (a *App) WhoAmI(ctx context.Context) error {
	client, err := a.creds.Client()
	if err != nil {
		printlnFn(messageFor(err))
		return err
	}
	user, err := client.GetUser(ctx)
	if err != nil {
		printlnFn(fmt.Sprintf(msgRequestError, err.Error()))
		return err
	}
	printlnFn(user.Login)
	return nil
}
