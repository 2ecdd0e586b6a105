// Package client calls the document vault HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"docvault/internal/model"
	"docvault/internal/service"
	"docvault/internal/session"
)

// DefaultTimeout covers the slowest operation delay with room for transfer time.
const DefaultTimeout = 2 * time.Minute

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status    int
	Code      string
	Message   string
	Fields    map[string]string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap maps the error code to the matching service sentinel so callers
// can use errors.Is regardless of transport.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "INVALID_CREDENTIALS":
		return service.ErrInvalidCredentials
	case "EMAIL_TAKEN":
		return service.ErrEmailTaken
	case "INVALID_INPUT":
		return service.ErrInvalidInput
	case "NOT_FOUND":
		return service.ErrNotFound
	}
	return nil
}

type Client struct {
	base  string
	http  *http.Client
	token string
}

type Option func(*Client)

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) { c.token = token }

type sessionBody struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login implements session.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (session.Record, error) {
	var out sessionBody
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return session.Record{}, err
	}
	return session.Record{User: out.User, Token: out.Token}, nil
}

// Register implements session.Authenticator.
func (c *Client) Register(ctx context.Context, name, email, password string) (session.Record, error) {
	var out sessionBody
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return session.Record{}, err
	}
	return session.Record{User: out.User, Token: out.Token}, nil
}

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// ListResult is the body of a document listing.
type ListResult struct {
	Data       []model.Document `json:"data"`
	Total      int              `json:"total"`
	Categories []string         `json:"categories"`
}

// List returns documents matching term and category; empty values do not filter.
func (c *Client) List(ctx context.Context, term, category string) (ListResult, error) {
	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	if category != "" {
		q.Set("category", category)
	}
	path := "/documents"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ListResult
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Upload streams content as a multipart form.
func (c *Client) Upload(ctx context.Context, title, category, fileName string, content io.Reader) (*model.Document, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, title, category, fileName, content)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/documents", pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var doc model.Document
	if err := c.do(req, &doc); err != nil {
		pr.Close()
		return nil, err
	}
	return &doc, nil
}

func writeUploadForm(mw *multipart.Writer, title, category, fileName string, content io.Reader) error {
	if err := mw.WriteField("title", title); err != nil {
		return err
	}
	if err := mw.WriteField("category", category); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, content)
	return err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Download(ctx context.Context, id string) (service.Receipt, error) {
	var rec service.Receipt
	err := c.doJSON(ctx, http.MethodPost, "/documents/"+url.PathEscape(id)+"/download", nil, &rec)
	return rec, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		RequestID string `json:"request_id"`
		Error     struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Fields  map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return apiErr
	}
	apiErr.RequestID = payload.RequestID
	apiErr.Code = payload.Error.Code
	apiErr.Message = payload.Error.Message
	apiErr.Fields = payload.Error.Fields
	return apiErr
}
