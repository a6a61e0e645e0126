// Package client is the HTTP wrapper every service call goes through.
//
// It builds the URL, attaches the session token as the "token" query
// parameter, strips null body fields, and classifies every failure into the
// error taxonomy of internal/errors.
//
// Usage:
//
//	c := client.New("https://api.example.com")
//	c.SetSession(store)
//	resp, err := c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/user/me"})
package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lasatanica/backoffice/internal/errors"
	"github.com/lasatanica/backoffice/internal/log"
	"github.com/lasatanica/backoffice/internal/telemetry"
)

// Session supplies the current token and is cleared on a 401
type Session interface {
	Token() string
	Clear()
}

// Contract reports whether an endpoint is part of the API contract
type Contract interface {
	Allows(method, path string) bool
}

// File is one part of a multipart upload
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Request describes one API call. The zero value of SkipAuth means the
// call is authenticated.
type Request struct {
	Method   string
	Path     string
	Query    map[string]any
	Body     any
	Files    map[string]File
	SkipAuth bool
}

// Response is a successful (status < 400) API response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into v
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.NewDecodeError(err)
	}
	return nil
}

// Observer sees every call that passed request validation. status is zero
// when no response was received.
type Observer interface {
	ObserveRequest(method, path string, status int, err error, elapsed time.Duration)
}

// Config holds client tuning
type Config struct {
	Timeout  time.Duration
	Contract Contract
	Observer Observer
	Logger   *log.Logger
}

// DefaultConfig returns the default client configuration
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// Client talks to the back-office API
type Client struct {
	baseURL    string
	httpClient *http.Client
	contract   Contract
	observer   Observer
	logger     *log.Logger

	mu      sync.RWMutex
	token   string
	session Session
}

// New creates a client with the default configuration
func New(baseURL string) *Client {
	return NewWithConfig(baseURL, nil)
}

// NewWithConfig creates a client with the given configuration
func NewWithConfig(baseURL string, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		contract:   cfg.Contract,
		observer:   cfg.Observer,
		logger:     logger.With("component", "api_client"),
	}
}

// BaseURL returns the base URL without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetSession injects the session that supplies tokens
func (c *Client) SetSession(s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// SetToken sets the fallback token used when no session token is available
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken drops the fallback token
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Token returns the session token, or the fallback token
func (c *Client) Token() string {
	c.mu.RLock()
	session, token := c.session, c.token
	c.mu.RUnlock()

	if session != nil {
		if t := session.Token(); t != "" {
			return t
		}
	}
	return token
}

// Do performs one HTTP call and classifies the outcome
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	if err := validate(method, req.Path); err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, span := telemetry.StartRequestSpan(ctx, method, req.Path)
	resp, status, err := c.do(ctx, method, req)
	telemetry.EndRequestSpan(span, status, err)
	if c.observer != nil {
		c.observer.ObserveRequest(method, req.Path, status, err, time.Since(start))
	}
	return resp, err
}

func (c *Client) do(ctx context.Context, method string, req Request) (*Response, int, error) {
	if c.contract != nil && !c.contract.Allows(method, req.Path) {
		return nil, 0, errors.NewNotInContractError(method, req.Path)
	}

	query := url.Values{}
	for key, value := range req.Query {
		addQueryValue(query, key, value)
	}
	if !req.SkipAuth {
		if token := c.Token(); token != "" {
			query.Set("token", token)
		}
	}

	body, contentType, err := encodeBody(req.Body, req.Files)
	if err != nil {
		return nil, 0, errors.NewUnexpectedError(err)
	}

	target := c.baseURL + req.Path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, 0, errors.NewUnexpectedError(err)
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	telemetry.Inject(ctx, httpReq.Header)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", req.Path,
		"query", redact(query).Encode(),
		"request_id", requestID,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, 0, errors.NewTimeoutError(err)
		}
		return nil, 0, errors.NewTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, resp.StatusCode, errors.NewTimeoutError(err)
		}
		return nil, resp.StatusCode, errors.NewTransportError(err)
	}

	c.logger.DebugContext(ctx, "api response",
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if err := c.classify(resp.StatusCode, data); err != nil {
		c.logger.WithError(err).DebugContext(ctx, "api request failed", "path", req.Path, "request_id", requestID)
		return nil, resp.StatusCode, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, resp.StatusCode, nil
}

func (c *Client) classify(status int, body []byte) error {
	if status < 400 {
		return nil
	}

	detail := extractDetail(body)

	switch {
	case status == http.StatusUnauthorized:
		c.ClearToken()
		c.mu.RLock()
		session := c.session
		c.mu.RUnlock()
		if session != nil {
			session.Clear()
		}
		return errors.NewUnauthorizedError(detail)
	case status == http.StatusForbidden:
		return errors.NewForbiddenError(detail)
	case status == http.StatusNotFound:
		return errors.NewNotFoundError(detail)
	case status == http.StatusUnprocessableEntity:
		return errors.NewValidationError(detail)
	case status >= 500:
		return errors.NewServerError(status, detail)
	default:
		return errors.NewStatusError(status, detail)
	}
}

func validate(method, path string) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return errors.NewInvalidRequestError(fmt.Sprintf("unsupported method %q", method))
	}
	if !strings.HasPrefix(path, "/") {
		return errors.NewInvalidRequestError(fmt.Sprintf("path %q must start with /", path))
	}
	return nil
}

// addQueryValue adds value under key, dropping nil values and nil pointers
func addQueryValue(q url.Values, key string, value any) {
	if value == nil {
		return
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		q.Add(key, v.String())
	case reflect.Bool:
		q.Add(key, strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		q.Add(key, strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		q.Add(key, strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		q.Add(key, strconv.FormatFloat(v.Float(), 'f', -1, 64))
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			addQueryValue(q, key, v.Index(i).Interface())
		}
	default:
		q.Add(key, fmt.Sprint(v.Interface()))
	}
}

// StripNulls encodes body as JSON and, when it is an object, removes the
// top-level fields whose value is null
func StripNulls(body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	fields, ok := objectFields(data)
	if !ok {
		return data, nil
	}
	return json.Marshal(fields)
}

func objectFields(data []byte) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	for k, v := range fields {
		if string(bytes.TrimSpace(v)) == "null" {
			delete(fields, k)
		}
	}
	return fields, true
}

func encodeBody(body any, files map[string]File) (io.Reader, string, error) {
	if len(files) == 0 {
		if body == nil {
			return nil, "", nil
		}
		data, err := StripNulls(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for field, f := range files {
		part, err := w.CreateFormFile(field, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", field, err)
		}
	}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode body: %w", err)
		}
		fields, _ := objectFields(data)
		for k, raw := range fields {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				s = string(raw)
			}
			if err := w.WriteField(k, s); err != nil {
				return nil, "", fmt.Errorf("write form field %s: %w", k, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// extractDetail reads {"detail": ...} from an error body. Non-string details
// are rendered as compact JSON; anything else falls back to the raw text.
func extractDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 && string(payload.Detail) != "null" {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, payload.Detail); err == nil {
			return compact.String()
		}
	}
	return strings.TrimSpace(string(body))
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func redact(q url.Values) url.Values {
	if q.Get("token") == "" {
		return q
	}
	out := url.Values{}
	for k, v := range q {
		out[k] = v
	}
	out.Set("token", "[redacted]")
	return out
}
