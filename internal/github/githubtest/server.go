// Package githubtest runs an in-memory imitation of the GitHub REST
// endpoints used by gitdrop. It records every request so tests can assert
// on the exact sequence of remote calls.
package githubtest

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Call is one recorded request.
type Call struct {
	Method string
	Path   string
	Token  string
	Body   []byte
}

func (c Call) String() string {
	return c.Method + " " + c.Path
}

type file struct {
	content []byte
	sha     string
}

type failure struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]string // token -> login
	repos    map[string]bool   // owner/repo
	files    map[string]file   // owner/repo/path
	calls    []Call
	failures map[string]failure

	// Hook, when set, runs before each request is served.
	Hook func(method, path string)
}

// NewServer starts a server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    map[string]string{},
		repos:    map[string]bool{},
		files:    map[string]file{},
		failures: map[string]failure{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", s.auth(s.getUser))
	mux.HandleFunc("POST /user/repos", s.auth(s.createRepo))
	mux.HandleFunc("GET /repos/{owner}/{repo}", s.auth(s.getRepo))
	mux.HandleFunc("GET /repos/{owner}/{repo}/contents/{path...}", s.auth(s.getContent))
	mux.HandleFunc("PUT /repos/{owner}/{repo}/contents/{path...}", s.auth(s.putContent))

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// AddUser registers a valid credential.
func (s *Server) AddUser(token, login string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[token] = login
}

func (s *Server) AddRepo(owner, repo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[owner+"/"+repo] = true
}

func (s *Server) AddFile(owner, repo, path string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[owner+"/"+repo+"/"+path] = file{content: content, sha: blobSHA(content)}
}

func (s *Server) HasRepo(owner, repo string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repos[owner+"/"+repo]
}

// File returns the stored content of path.
func (s *Server) File(owner, repo, path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[owner+"/"+repo+"/"+path]
	return f.content, ok
}

// Fail makes every method request to path answer with status and a JSON
// body carrying message. An empty message produces an empty body.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body := ""
	if message != "" {
		b, _ := json.Marshal(map[string]string{"message": message})
		body = string(b)
	}
	s.failures[method+" "+path] = failure{status: status, body: body}
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]failure{}
}

// Calls returns a copy of the recorded requests in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount counts recorded requests with method whose path starts with prefix.
func (s *Server) CallCount(method, prefix string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && strings.HasPrefix(c.Path, prefix) {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Token:  strings.TrimPrefix(r.Header.Get("Authorization"), "token "),
			Body:   body,
		})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		hook := s.Hook
		s.mu.Unlock()

		if hook != nil {
			hook(r.Method, r.URL.Path)
		}

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type handler func(w http.ResponseWriter, r *http.Request, login string)

func (s *Server) auth(next handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "token ")

		s.mu.Lock()
		login, ok := s.users[token]
		s.mu.Unlock()

		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		next(w, r, login)
	}
}

func (s *Server) getUser(w http.ResponseWriter, _ *http.Request, login string) {
	writeJSON(w, http.StatusOK, map[string]any{"login": login, "id": 1})
}

func (s *Server) createRepo(w http.ResponseWriter, r *http.Request, login string) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Validation Failed"})
		return
	}

	key := login + "/" + req.Name
	s.mu.Lock()
	exists := s.repos[key]
	s.repos[key] = true
	s.mu.Unlock()

	if exists {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Repository creation failed."})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"name":           req.Name,
		"full_name":      key,
		"default_branch": "main",
	})
}

func (s *Server) getRepo(w http.ResponseWriter, r *http.Request, _ string) {
	key := r.PathValue("owner") + "/" + r.PathValue("repo")

	s.mu.Lock()
	ok := s.repos[key]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":           r.PathValue("repo"),
		"full_name":      key,
		"default_branch": "main",
	})
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request, _ string) {
	path := r.PathValue("path")
	key := r.PathValue("owner") + "/" + r.PathValue("repo") + "/" + path

	s.mu.Lock()
	f, ok := s.files[key]
	var listing []map[string]any
	if !ok {
		for k, child := range s.files {
			if strings.HasPrefix(k, key+"/") {
				childPath := strings.TrimPrefix(k, r.PathValue("owner")+"/"+r.PathValue("repo")+"/")
				listing = append(listing, map[string]any{"path": childPath, "sha": child.sha, "type": "file"})
			}
		}
	}
	s.mu.Unlock()

	if listing != nil {
		writeJSON(w, http.StatusOK, listing)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    path[strings.LastIndex(path, "/")+1:],
		"path":    path,
		"sha":     f.sha,
		"type":    "file",
		"content": base64.StdEncoding.EncodeToString(f.content),
	})
}

func (s *Server) putContent(w http.ResponseWriter, r *http.Request, _ string) {
	repoKey := r.PathValue("owner") + "/" + r.PathValue("repo")
	path := r.PathValue("path")

	var req struct {
		Message string `json:"message"`
		Content string `json:"content"`
		Branch  string `json:"branch"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Invalid request."})
		return
	}
	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "content is not valid Base64"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.repos[repoKey] {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	key := repoKey + "/" + path
	status := http.StatusCreated
	if existing, ok := s.files[key]; ok {
		if req.SHA == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": `Invalid request. "sha" wasn't supplied.`})
			return
		}
		if req.SHA != existing.sha {
			writeJSON(w, http.StatusConflict, map[string]string{"message": path + " does not match " + req.SHA})
			return
		}
		status = http.StatusOK
	}

	f := file{content: content, sha: blobSHA(content)}
	s.files[key] = f

	writeJSON(w, status, map[string]any{
		"content": map[string]any{"path": path, "sha": f.sha, "type": "file"},
		"commit":  map[string]any{"sha": blobSHA([]byte(req.Message + f.sha))},
	})
}

func blobSHA(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
