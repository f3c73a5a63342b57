// Package client is a document-store-shaped facade over the tutor-api HTTP
// endpoints. It exists for consumers written against a realtime snapshot
// API: the method names mirror that style, but every read is a single
// request-response fetch. OnSnapshot invokes its callback exactly once and
// never again, even if the underlying data changes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// StatusError carries the HTTP status of a failed backend call.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Body)
}

// Client talks to the HTTP facade.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New constructs a Client for the given base URL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Doc is one record of a collection snapshot.
type Doc struct {
	ID   string
	data map[string]interface{}
}

// Data returns the record payload.
func (d Doc) Data() map[string]interface{} {
	return d.data
}

// Snapshot is the result of a collection read.
type Snapshot struct {
	Docs []Doc
}

// CollectionRef addresses a named collection.
type CollectionRef struct {
	client *Client
	name   string
}

// Collection returns a reference to the named collection. Only the teacher
// directory collections are backed by data; anything else reads as empty.
func (c *Client) Collection(name string) *CollectionRef {
	return &CollectionRef{client: c, name: name}
}

// OnSnapshot fetches the collection once and invokes cb with the result.
// Failures degrade to an empty snapshot: subscription-style callers have no
// error return path, so the error is logged instead. The returned stop
// function exists for API symmetry; there is nothing to unsubscribe from.
func (r *CollectionRef) OnSnapshot(ctx context.Context, cb func(Snapshot)) func() {
	go func() {
		snap, err := r.Get(ctx)
		if err != nil {
			r.client.logger.Error("collection snapshot failed",
				zap.String("collection", r.name), zap.Error(err))
			cb(Snapshot{Docs: []Doc{}})
			return
		}
		cb(snap)
	}()
	return func() {}
}

// Get fetches the collection contents.
func (r *CollectionRef) Get(ctx context.Context) (Snapshot, error) {
	if r.name != "teachers" && r.name != "teacherProfiles" {
		return Snapshot{Docs: []Doc{}}, nil
	}

	var payload struct {
		Teachers []map[string]interface{} `json:"teachers"`
	}
	if err := r.client.getJSON(ctx, "/api/list-teachers", &payload); err != nil {
		return Snapshot{}, err
	}

	docs := make([]Doc, 0, len(payload.Teachers))
	for _, t := range payload.Teachers {
		id, _ := t["id"].(string)
		docs = append(docs, Doc{ID: id, data: t})
	}
	return Snapshot{Docs: docs}, nil
}

// DocRef addresses one document.
type DocRef struct {
	Collection string
	ID         string
}

// Doc returns a reference to a document in the named collection.
func (c *Client) Doc(collection, id string) DocRef {
	return DocRef{Collection: collection, ID: id}
}

// DocumentSnapshot is the result of a single-document read.
type DocumentSnapshot struct {
	exists bool
	data   map[string]interface{}
}

// Exists reports whether the document was found.
func (s DocumentSnapshot) Exists() bool { return s.exists }

// Data returns the document payload, nil when absent.
func (s DocumentSnapshot) Data() map[string]interface{} {
	if !s.exists {
		return nil
	}
	return s.data
}

// GetDoc fetches one document. Like the subscription path it degrades:
// a missing ID, a 404 or a transport failure all read as a non-existent
// document.
func (c *Client) GetDoc(ctx context.Context, ref DocRef) DocumentSnapshot {
	if ref.ID == "" {
		return DocumentSnapshot{}
	}

	var payload struct {
		Teacher map[string]interface{} `json:"teacher"`
	}
	path := "/api/teacher/" + url.PathEscape(ref.ID)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		c.logger.Warn("document fetch failed", zap.String("id", ref.ID), zap.Error(err))
		return DocumentSnapshot{}
	}
	if payload.Teacher == nil {
		return DocumentSnapshot{}
	}
	return DocumentSnapshot{exists: true, data: payload.Teacher}
}

// AuthUser is the normalized account shape returned by the auth calls.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AuthResult wraps a user plus the session token issued by the backend.
type AuthResult struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

// SignInWithEmailAndPassword proxies to the login endpoint. Unlike the read
// paths, auth failures surface as errors carrying the HTTP status.
func (c *Client) SignInWithEmailAndPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.postJSON(ctx, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateUserWithEmailAndPassword proxies to the register endpoint, deriving
// a display name from the email's local part the way the original frontend
// did.
func (c *Client) CreateUserWithEmailAndPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	body := map[string]string{
		"userId":   email,
		"name":     name,
		"email":    email,
		"role":     "student",
		"password": password,
	}
	var result AuthResult
	if err := c.postJSON(ctx, "/api/auth/register", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, dest)
}

func (c *Client) postJSON(ctx context.Context, path string, body, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &StatusError{Status: res.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if dest == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(dest)
}
