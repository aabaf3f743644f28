package uploader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gitdrop/internal/cryptox"
	"github.com/dmitrijs2005/gitdrop/internal/github"
	"github.com/dmitrijs2005/gitdrop/internal/logging"
	"github.com/dmitrijs2005/gitdrop/internal/store"
)

const (
	metaTokenKey = "github_token"
	metaSaltKey  = "token_salt"
	saltSize     = 16
)

// MetadataStore is the persistence the credential store needs; *store.Store
// implements it.
type MetadataStore interface {
	Metadata() store.MetadataRepository
	WithTx(ctx context.Context, fn func(ctx context.Context, repo store.MetadataRepository) error) error
}

// CredentialStore holds the active GitHub token. A candidate only becomes
// active after GitHub confirms it, so a rejected candidate never replaces
// a working token.
//
// With a MetadataStore and a passphrase the active token is kept sealed on
// disk and restored by Load. Without either it lives in memory only.
type CredentialStore struct {
	mu     sync.RWMutex
	token  string
	client *github.Client

	db         MetadataStore
	passphrase []byte
	key        []byte

	log logging.Logger
}

func NewCredentialStore(client *github.Client, db MetadataStore, passphrase string, log logging.Logger) *CredentialStore {
	if log == nil {
		log = logging.Nop()
	}
	return &CredentialStore{
		client:     client,
		db:         db,
		passphrase: []byte(passphrase),
		log:        log,
	}
}

// Set validates candidate against GET /user and activates it. It returns
// the login the token belongs to.
func (c *CredentialStore) Set(ctx context.Context, candidate string) (string, error) {

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", ErrNoToken
	}

	user, err := c.client.WithToken(candidate).GetUser(ctx)
	if err != nil {
		c.log.Warn(ctx, "token validation failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if user.Login == "" {
		return "", ErrInvalidToken
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.persist(ctx, candidate); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenNotSaved, err)
	}
	c.token = candidate

	c.log.Info(ctx, "token activated", "login", user.Login)
	return user.Login, nil
}

// Load restores a previously persisted token. It reports whether one was
// found.
func (c *CredentialStore) Load(ctx context.Context) (bool, error) {

	if !c.persistent() {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	repo := c.db.Metadata()
	sealed, err := repo.Get(ctx, metaTokenKey)
	if err != nil {
		return false, err
	}
	if sealed == nil {
		return false, nil
	}

	key, err := c.deriveKey(ctx, repo, false)
	if err != nil {
		return false, err
	}

	plain, err := cryptox.Open(sealed, key)
	if err != nil {
		return false, fmt.Errorf("unseal token (wrong passphrase?): %w", err)
	}
	c.token = string(plain)
	c.key = key
	cryptox.Wipe(plain)

	return true, nil
}

// Clear forgets the active token and removes the persisted copy.
func (c *CredentialStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	if !c.persistent() {
		return nil
	}
	return c.db.Metadata().Delete(ctx, metaTokenKey)
}

// HasToken reports whether a token is active.
func (c *CredentialStore) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Client returns the remote client bound to the active token.
func (c *CredentialStore) Client() (*github.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == "" {
		return nil, ErrNoToken
	}
	return c.client.WithToken(c.token), nil
}

func (c *CredentialStore) persistent() bool {
	return c.db != nil && len(c.passphrase) > 0
}

func (c *CredentialStore) persist(ctx context.Context, token string) error {

	if !c.persistent() {
		c.log.Warn(ctx, "no passphrase or storage configured, token kept in memory only")
		return nil
	}

	var key []byte
	err := c.db.WithTx(ctx, func(ctx context.Context, repo store.MetadataRepository) error {
		var err error
		key, err = c.deriveKey(ctx, repo, true)
		if err != nil {
			return err
		}
		sealed, err := cryptox.Seal([]byte(token), key)
		if err != nil {
			return err
		}
		return repo.Set(ctx, metaTokenKey, sealed)
	})
	if err != nil {
		return err
	}
	c.key = key
	return nil
}

// deriveKey returns the sealing key, creating the salt on first use when
// create is set. The key is cached by callers once it has proven usable.
// Callers hold c.mu.
func (c *CredentialStore) deriveKey(ctx context.Context, repo store.MetadataRepository, create bool) ([]byte, error) {

	if c.key != nil {
		return c.key, nil
	}

	salt, err := repo.Get(ctx, metaSaltKey)
	if err != nil {
		return nil, err
	}

	if salt == nil {
		if !create {
			return nil, errors.New("token salt is missing")
		}
		salt, err = cryptox.RandomBytes(saltSize)
		if err != nil {
			return nil, err
		}
		if err := repo.Set(ctx, metaSaltKey, salt); err != nil {
			return nil, err
		}
	}

	return cryptox.DeriveKey(c.passphrase, salt), nil
}
