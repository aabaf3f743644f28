// Package uploader turns a chat attachment into a file in the requester's
// GitHub storage repository and returns a direct link to it.
//
// An upload runs these stages in order and stops at the first failure:
// credential check, cooldown, attachment checks, filename sanitizing,
// login lookup, repository creation when needed, collision-free name
// resolution, and the content upload itself.
package uploader

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/gitdrop/internal/github"
	"github.com/dmitrijs2005/gitdrop/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxFileSize is the largest attachment accepted (100 MiB).
const MaxFileSize int64 = 100 * 1024 * 1024

const tracerName = "github.com/dmitrijs2005/gitdrop/internal/uploader"

// Attachment is a file offered by the chat host. Content is fetched lazily
// so that oversized attachments are rejected without downloading them.
type Attachment interface {
	Name() string
	Size() int64
	Open(ctx context.Context) (io.ReadCloser, error)
}

type UploadRequest struct {
	RequesterID int64
	Attachment  Attachment
}

type UploadResult struct {
	ID                string
	Filename          string
	URL               string
	Repository        string
	Owner             string
	RepositoryCreated bool
}

// Options are the tunables of an Uploader.
type Options struct {
	AccountID        int64
	RawBaseURL       string
	RepoInitDelay    time.Duration
	MaxProbeAttempts int
}

type Uploader struct {
	creds   *CredentialStore
	limiter Limiter
	opts    Options

	log    logging.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

type Option func(*Uploader)

func WithLogger(l logging.Logger) Option {
	return func(u *Uploader) { u.log = l }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(u *Uploader) { u.tracer = tp.Tracer(tracerName) }
}

// WithClock replaces time.Now for the cooldown and generated names.
func WithClock(now func() time.Time) Option {
	return func(u *Uploader) { u.now = now }
}

func New(creds *CredentialStore, limiter Limiter, opts Options, options ...Option) *Uploader {
	u := &Uploader{
		creds:   creds,
		limiter: limiter,
		opts:    opts,
		log:     logging.Nop(),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, o := range options {
		o(u)
	}
	return u
}

// Upload stores req.Attachment in the account's storage repository.
//
// Local rejections are returned as the package's sentinel errors. Failures
// of the remote stages are returned as *UploadFailedError.
func (u *Uploader) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {

	id := u.newID()
	log := u.log.With("upload_id", id, "requester_id", req.RequesterID)

	ctx, span := u.tracer.Start(ctx, "uploader.Upload", trace.WithAttributes(
		attribute.String("upload.id", id),
		attribute.Int64("upload.requester_id", req.RequesterID),
	))
	defer span.End()

	res, err := u.upload(ctx, log, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn(ctx, "upload failed", "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.String("upload.url", res.URL))
	log.Info(ctx, "upload completed", "filename", res.Filename, "url", res.URL)
	return res, nil
}

func (u *Uploader) upload(ctx context.Context, log logging.Logger, id string, req UploadRequest) (*UploadResult, error) {

	client, err := u.creds.Client()
	if err != nil {
		return nil, err
	}

	now := u.now()
	allowed, err := u.limiter.Allow(ctx, req.RequesterID, now)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	att := req.Attachment
	if att == nil {
		return nil, ErrNoFile
	}
	if att.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	filename := SanitizeFilename(att.Name(), now)
	if filename == "" {
		return nil, ErrInvalidFilename
	}

	log.Info(ctx, "upload started", "filename", filename, "size", att.Size())

	res := &UploadResult{ID: id, Repository: RepoName(u.opts.AccountID)}

	err = u.step(ctx, StepResolveUser, func(ctx context.Context) error {
		user, err := client.GetUser(ctx)
		if err != nil {
			return err
		}
		res.Owner = user.Login
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = u.step(ctx, StepEnsureRepository, func(ctx context.Context) error {
		created, err := EnsureRepository(ctx, client, res.Owner, res.Repository, u.opts.RepoInitDelay)
		res.RepositoryCreated = created
		if created {
			log.Info(ctx, "repository created", "owner", res.Owner, "repository", res.Repository)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = u.step(ctx, StepResolveFilename, func(ctx context.Context) error {
		name, err := ResolveFilename(ctx, client, res.Owner, res.Repository, filename, u.opts.MaxProbeAttempts)
		if err != nil {
			return err
		}
		if name != filename {
			log.Info(ctx, "filename taken, using a free one", "requested", filename, "resolved", name)
		}
		res.Filename = name
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = u.step(ctx, StepUploadContent, func(ctx context.Context) error {
		content, err := readAttachment(ctx, att)
		if err != nil {
			return err
		}
		return u.putContent(ctx, client, res, content)
	})
	if err != nil {
		return nil, err
	}

	res.URL = fmt.Sprintf("%s/%s/%s/%s/%s", strings.TrimRight(u.opts.RawBaseURL, "/"), res.Owner, res.Repository, Branch, res.Filename)
	return res, nil
}

// putContent writes content to res.Filename. If the file appeared after the
// name was resolved, it is overwritten with its current sha.
func (u *Uploader) putContent(ctx context.Context, api RemoteAPI, res *UploadResult, content []byte) error {

	req := github.PutContentRequest{
		Message: "Upload " + res.Filename,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  Branch,
	}

	if existing, err := api.GetContent(ctx, res.Owner, res.Repository, res.Filename); err == nil && existing.SHA != "" {
		req.Message = "Update " + res.Filename
		req.SHA = existing.SHA
	}

	_, err := api.PutContent(ctx, res.Owner, res.Repository, res.Filename, req)
	return err
}

func (u *Uploader) step(ctx context.Context, step Step, fn func(ctx context.Context) error) error {
	ctx, span := u.tracer.Start(ctx, "uploader."+string(step))
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &UploadFailedError{Step: step, Err: err}
	}
	return nil
}

func readAttachment(ctx context.Context, att Attachment) ([]byte, error) {
	rc, err := att.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	if int64(len(content)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return content, nil
}
