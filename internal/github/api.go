package github

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
}

type CreateRepositoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init"`
}

const (
	ContentTypeFile = "file"
	ContentTypeDir  = "dir"
)

// Content is the metadata of a file in a repository. Only SHA matters to
// callers: it is required to overwrite an existing file.
type Content struct {
	Name string `json:"name"`
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Type string `json:"type"`
}

// PutContentRequest creates or updates a file. Content is base64-encoded;
// SHA must be set when the file already exists.
type PutContentRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type PutContentResponse struct {
	Content Content `json:"content"`
	Commit  struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// GetUser returns the account the credential belongs to.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.Do(ctx, http.MethodGet, "/user", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	var r Repository
	if err := c.Do(ctx, http.MethodGet, repoPath(owner, repo), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRepository creates a repository owned by the authenticated user.
func (c *Client) CreateRepository(ctx context.Context, req CreateRepositoryRequest) (*Repository, error) {
	var r Repository
	if err := c.Do(ctx, http.MethodPost, "/user/repos", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetContent looks up path. A directory is answered with a listing rather
// than an object; it is reported as a Content of type "dir" without a SHA.
func (c *Client) GetContent(ctx context.Context, owner, repo, path string) (*Content, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, contentsPath(owner, repo, path), nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return &Content{Name: pathBase(path), Path: path, Type: ContentTypeDir}, nil
	}

	// Any 2xx means the path exists, whatever the body looks like.
	ct := Content{Name: pathBase(path), Path: path}
	if len(trimmed) > 0 {
		_ = json.Unmarshal(trimmed, &ct)
	}
	return &ct, nil
}

func (c *Client) PutContent(ctx context.Context, owner, repo, path string, req PutContentRequest) (*PutContentResponse, error) {
	var out PutContentResponse
	if err := c.Do(ctx, http.MethodPut, contentsPath(owner, repo, path), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func repoPath(owner, repo string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}

func contentsPath(owner, repo, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return repoPath(owner, repo) + "/contents/" + strings.Join(segments, "/")
}

func pathBase(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
