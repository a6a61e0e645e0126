package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasatanica/backoffice/internal/errors"
)

type fakeSession struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (s *fakeSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cleared++
}

type allowList map[string]bool

func (a allowList) Allows(method, path string) bool {
	return a[method+" "+path]
}

// capture records the last request the server saw
type capture struct {
	mu     sync.Mutex
	req    *http.Request
	body   []byte
	status int
	reply  string
}

func (c *capture) handler(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.req = r
	c.body, _ = io.ReadAll(r.Body)
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, c.reply)
}

type observation struct {
	method, path string
	status       int
	err          error
}

type recordingObserver struct {
	seen []observation
}

func (o *recordingObserver) ObserveRequest(method, path string, status int, err error, elapsed time.Duration) {
	o.seen = append(o.seen, observation{method, path, status, err})
}

func newServer(t *testing.T, c *capture) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(c.handler))
	t.Cleanup(server.Close)
	return server
}

func TestNewWithConfig(t *testing.T) {
	c := NewWithConfig("https://api.example.com/", &Config{Timeout: 5 * time.Second})

	assert.Equal(t, "https://api.example.com", c.BaseURL())
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
}

func TestNewWithConfig_NilConfig(t *testing.T) {
	c := NewWithConfig("https://api.example.com", nil)

	assert.Equal(t, DefaultConfig().Timeout, c.httpClient.Timeout)
}

func TestDoQueryDropsNilValues(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := New(server.URL)

	var missing *int
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/x",
		Query: map[string]any{
			"id":       5,
			"filter":   nil,
			"event":    missing,
			"reviewed": true,
			"year":     func() *int { v := 2025; return &v }(),
		},
	})
	require.NoError(t, err)

	q := rec.req.URL.Query()
	assert.Equal(t, "5", q.Get("id"))
	assert.Equal(t, "true", q.Get("reviewed"))
	assert.Equal(t, "2025", q.Get("year"))
	assert.NotContains(t, q, "filter")
	assert.NotContains(t, q, "event")
	assert.NotContains(t, q, "token")
}

func TestDoStripsNullBodyFields(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := New(server.URL)

	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/x",
		Body:   map[string]any{"a": 1, "b": nil, "c": "x"},
	})
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, map[string]any{"a": float64(1), "c": "x"}, sent)
	assert.NotContains(t, string(rec.body), `"b"`)
	assert.Equal(t, "application/json", rec.req.Header.Get("Content-Type"))
}

func TestDoStripsNilPointerFields(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := New(server.URL)

	type update struct {
		ID   int     `json:"id"`
		Name *string `json:"name"`
	}

	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/x", Body: update{ID: 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3}`, string(rec.body))
}

func TestStripNullsNonObject(t *testing.T) {
	data, err := StripNulls([]any{1, nil})
	require.NoError(t, err)
	assert.Equal(t, `[1,null]`, string(data))
}

func TestDoTokenFromSession(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := New(server.URL)
	c.SetToken("fallback")
	c.SetSession(&fakeSession{token: "session-token"})

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/me"})
	require.NoError(t, err)

	assert.Equal(t, "session-token", rec.req.URL.Query().Get("token"))
	assert.Empty(t, rec.req.Header.Get("Authorization"))
}

func TestDoTokenFallback(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := New(server.URL)
	c.SetSession(&fakeSession{})
	c.SetToken("fallback")

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/me"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", rec.req.URL.Query().Get("token"))
}

func TestDoSkipAuth(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := New(server.URL)
	c.SetToken("secret")

	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth/login", SkipAuth: true})
	require.NoError(t, err)
	assert.NotContains(t, rec.req.URL.Query(), "token")
}

func TestDoRequestID(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := New(server.URL)

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	require.NoError(t, err)

	_, err = uuid.Parse(rec.req.Header.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestDoUnauthorizedClearsSession(t *testing.T) {
	rec := &capture{status: http.StatusUnauthorized, reply: `{"detail":"Token expired"}`}
	server := newServer(t, rec)
	c := New(server.URL)
	session := &fakeSession{token: "t"}
	c.SetSession(session)
	c.SetToken("t")

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/me"})
	require.Error(t, err)

	assert.True(t, errors.IsUnauthorized(err))
	assert.Equal(t, 1, session.cleared)
	assert.Empty(t, c.Token())
}

func TestDoForbiddenKeepsSession(t *testing.T) {
	rec := &capture{status: http.StatusForbidden, reply: `{"detail":"nope"}`}
	server := newServer(t, rec)
	c := New(server.URL)
	session := &fakeSession{token: "t"}
	c.SetSession(session)

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/users_list"})
	require.Error(t, err)

	assert.True(t, errors.IsForbidden(err))
	assert.Equal(t, 0, session.cleared)
	assert.Equal(t, "t", c.Token())
}

func TestDoStatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		reply      string
		kind       errors.Kind
		wantDetail string
	}{
		{"not found", 404, `{"detail":"Usuario no encontrado"}`, errors.KindNotFound, "Usuario no encontrado"},
		{"validation string", 422, `{"detail":"concepto too long"}`, errors.KindValidation, "concepto too long"},
		{"validation array", 422, `{"detail":[{"loc":["body","email"],"msg":"bad"}]}`, errors.KindValidation, `[{"loc":["body","email"],"msg":"bad"}]`},
		{"server json", 500, `{"detail":"db down"}`, errors.KindServer, "db down"},
		{"server raw text", 502, `Bad Gateway`, errors.KindServer, "Bad Gateway"},
		{"other status", 409, `{"detail":"conflict"}`, errors.KindAPI, "conflict"},
		{"json without detail", 400, `{"message":"x"}`, errors.KindAPI, `{"message":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &capture{status: tt.status, reply: tt.reply}
			server := newServer(t, rec)
			c := New(server.URL)

			_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
			require.Error(t, err)

			apiErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestDoTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c := NewWithConfig(server.URL, &Config{Timeout: 50 * time.Millisecond})

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/slow"})
	require.Error(t, err)

	apiErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindNetwork, apiErr.Kind)
	assert.Equal(t, errors.ErrCodeTimeout, apiErr.Code)
}

func TestDoTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New(url)
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	require.Error(t, err)

	assert.True(t, errors.IsNetwork(err))
}

func TestDoInvalidRequest(t *testing.T) {
	c := New("http://127.0.0.1:1")

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "x"})
	apiErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidRequest, apiErr.Code)

	_, err = c.Do(context.Background(), Request{Method: http.MethodPatch, Path: "/x"})
	apiErr, ok = errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidRequest, apiErr.Code)
}

func TestDoContractPreflight(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := NewWithConfig(server.URL, &Config{Contract: allowList{"GET /user/me": true}})

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/me"})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/unknown"})
	apiErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotInContract, apiErr.Code)
}

func TestDoObserver(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	obs := &recordingObserver{}
	c := NewWithConfig(server.URL, &Config{Observer: obs})

	_, err := c.Do(context.Background(), Request{Method: "get", Path: "/user/me"})
	require.NoError(t, err)

	rec.mu.Lock()
	rec.status, rec.reply = http.StatusInternalServerError, `{"detail":"down"}`
	rec.mu.Unlock()
	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/user/me"})
	require.Error(t, err)

	// rejected before any call is made
	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "no-slash"})
	require.Error(t, err)

	require.Len(t, obs.seen, 2)
	assert.Equal(t, observation{http.MethodGet, "/user/me", http.StatusOK, nil}, obs.seen[0])
	assert.Equal(t, http.StatusInternalServerError, obs.seen[1].status)
	assert.True(t, errors.IsServer(obs.seen[1].err))
}

func TestDoObserverWithoutResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	obs := &recordingObserver{}
	c := NewWithConfig(url, &Config{Observer: obs})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	require.Error(t, err)

	require.Len(t, obs.seen, 1)
	assert.Zero(t, obs.seen[0].status)
	assert.True(t, errors.IsNetwork(obs.seen[0].err))
}

func TestDoMultipart(t *testing.T) {
	rec := &capture{reply: `{}`}
	server := newServer(t, rec)
	c := New(server.URL)

	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/accounting_docs/upload_accounting_doc",
		Body:   map[string]any{"nombre": "ticket", "skip": nil},
		Files:  map[string]File{"file": {Name: "ticket.pdf", Content: []byte("%PDF")}},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rec.req.Header.Get("Content-Type"), "multipart/form-data"))
	assert.Contains(t, string(rec.body), `filename="ticket.pdf"`)
	assert.Contains(t, string(rec.body), "%PDF")
	assert.Contains(t, string(rec.body), `name="nombre"`)
	assert.NotContains(t, string(rec.body), `name="skip"`)
}

func TestResponseDecode(t *testing.T) {
	r := &Response{Body: []byte(`{"access_token":"abc"}`)}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, r.Decode(&out))
	assert.Equal(t, "abc", out.AccessToken)

	bad := &Response{Body: []byte(`not json`)}
	err := bad.Decode(&out)
	apiErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDecode, apiErr.Code)
}

func TestExtractDetail(t *testing.T) {
	assert.Equal(t, "plain", extractDetail([]byte(`{"detail":"plain"}`)))
	assert.Equal(t, `{"a":1}`, extractDetail([]byte(`{"detail": {"a": 1}}`)))
	assert.Equal(t, "raw text", extractDetail([]byte("raw text\n")))
	assert.Equal(t, `{"detail":null}`, extractDetail([]byte(`{"detail":null}`)))
}
