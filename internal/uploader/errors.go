package uploader

import "errors"

var (
	ErrNoToken         = errors.New("github token is not set")
	ErrInvalidToken    = errors.New("invalid github token")
	ErrTokenNotSaved   = errors.New("github token could not be saved")
	ErrRateLimited     = errors.New("too many requests, try again later")
	ErrNoFile          = errors.New("no file attached")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrProbeExhausted  = errors.New("no free filename found")
)

// Step names a remote stage of an upload.
type Step string

const (
	StepResolveUser      Step = "resolve_user"
	StepEnsureRepository Step = "ensure_repository"
	StepResolveFilename  Step = "resolve_filename"
	StepUploadContent    Step = "upload_content"
)

// UploadFailedError wraps a failure from one of the remote stages. Its
// message is the cause's message alone.
type UploadFailedError struct {
	Step Step
	Err  error
}

func (e *UploadFailedError) Error() string {
	return e.Err.Error()
}

func (e *UploadFailedError) Unwrap() error {
	return e.Err
}
