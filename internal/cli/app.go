package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gitdrop/internal/buildinfo"
	"github.com/dmitrijs2005/gitdrop/internal/config"
	"github.com/dmitrijs2005/gitdrop/internal/github"
	"github.com/dmitrijs2005/gitdrop/internal/logging"
	"github.com/dmitrijs2005/gitdrop/internal/store"
	"github.com/dmitrijs2005/gitdrop/internal/uploader"
	"github.com/redis/go-redis/v9"
)

// App owns every long-lived resource of a session.
type App struct {
	config   *config.Config
	client   *github.Client
	store    *store.Store
	rdb      *redis.Client
	creds    *uploader.CredentialStore
	uploader *uploader.Uploader
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {

	db, err := store.Open(ctx, c.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing storage: %w", err)
	}
	log.Debug(ctx, "storage opened", "dialect", db.Dialect())

	client := github.NewClient(c.APIBaseURL,
		github.WithTimeout(c.RequestTimeout),
		github.WithUserAgent(buildinfo.UserAgent()),
	)

	creds := uploader.NewCredentialStore(client, db, c.Passphrase, log)
	if found, err := creds.Load(ctx); err != nil {
		log.Warn(ctx, "stored token could not be restored", "error", err)
	} else if found {
		log.Info(ctx, "stored token restored")
	}

	a := &App{
		config: c,
		client: client,
		store:  db,
		creds:  creds,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	var limiter uploader.Limiter = uploader.NewMemoryLimiter(c.RateLimitInterval)
	if c.RedisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		limiter = uploader.NewRedisLimiter(a.rdb, c.RateLimitInterval)
	}

	a.uploader = uploader.New(creds, limiter, uploader.Options{
		AccountID:        c.AccountID,
		RawBaseURL:       c.RawBaseURL,
		RepoInitDelay:    c.RepoInitDelay,
		MaxProbeAttempts: c.MaxProbeAttempts,
	}, uploader.WithLogger(log))

	return a, nil
}

// Run serves commands from stdin until EOF or exit.
func (a *App) Run(ctx context.Context) {
	printlnFn(msgWelcome)
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

// Close releases the HTTP transport, the Redis client and the database.
func (a *App) Close(_ context.Context) error {
	a.client.CloseIdleConnections()

	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}

func (a *App) status() string {
	if a.hasToken() {
		return "(ready)"
	}
	return "(no token)"
}

func (a *App) hasToken() bool {
	return a.creds.HasToken()
}
