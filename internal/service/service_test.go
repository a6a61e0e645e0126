package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasatanica/backoffice/internal/contract"
	"github.com/lasatanica/backoffice/internal/errors"
	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/session"
	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

type call struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   []byte
	Header http.Header
}

// fakeAPI answers registered "METHOD /path" routes and records every call
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]func(w http.ResponseWriter, r *http.Request)
	calls  []call
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{routes: map[string]func(w http.ResponseWriter, r *http.Request){}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		api.mu.Lock()
		api.calls = append(api.calls, call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body, Header: r.Header})
		h, ok := api.routes[r.Method+" "+r.URL.Path]
		api.mu.Unlock()
		if !ok {
			http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(server.Close)
	return api, server
}

func (a *fakeAPI) handle(method, path string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (a *fakeAPI) last() call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[len(a.calls)-1]
}

func (a *fakeAPI) count(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func newTestContainer(t *testing.T) (*fakeAPI, *Container) {
	t.Helper()
	api, server := newFakeAPI(t)
	c := client.New(server.URL)
	return api, NewContainer(c, session.New())
}

func loginToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "9",
			ID:        fmt.Sprint(time.Now().UnixNano()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Nombre:    "Luis",
		Apellidos: "Pérez",
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key-at-least-32-bytes-long"))
	require.NoError(t, err)
	return raw
}

func startSession(t *testing.T, c *Container) {
	t.Helper()
	raw := loginToken(t, time.Hour)
	claims, err := session.DecodeToken(raw)
	require.NoError(t, err)
	require.NoError(t, c.Session.SetSession(types.Token{AccessToken: raw, TokenType: "bearer"}, claims))
}

func TestLoginSkipsToken(t *testing.T) {
	api, c := newTestContainer(t)
	raw := loginToken(t, time.Hour)
	api.handle("POST", "/auth/login", 200, `{"access_token":"`+raw+`","token_type":"bearer"}`)
	c.Client.SetToken("stale")

	token, err := c.Auth.Login(context.Background(), types.UserLogin{Email: "a@b.es", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, raw, token.AccessToken)
	assert.NotContains(t, api.last().Query, "token")
	assert.JSONEq(t, `{"email":"a@b.es","password":"secret"}`, string(api.last().Body))
}

func TestAuthenticatedCallsCarryToken(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("GET", "/user/me", 200, `{"name":"Luis","surname":"Pérez","email":"l@p.es","phone":"600000000","nif_nie":"12345678Z","birth_date":"1990-01-02","signup_date":"2020-01-01","account_holder":"Luis","iban":"ES9121000418450200051332"}`)

	profile, err := c.Auth.CurrentUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Luis Pérez", profile.FullName())
	assert.Equal(t, c.Session.Token(), api.last().Query["token"][0])
}

func TestUnauthorizedResetsSessionAndPermissions(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("GET", "/user/my_permissions", 200, `["home","users_list"]`)
	api.handle("GET", "/user/users_list", 401, `{"detail":"Could not validate credentials"}`)

	ok, err := c.Permissions.HasPermission(context.Background(), permission.UsersList)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = c.Users.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))

	assert.False(t, c.Session.IsAuthenticated())
	assert.Empty(t, c.Session.Token())
	assert.False(t, c.Permissions.Loaded())
}

func TestForbiddenKeepsSession(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("DELETE", "/user/delete_user", 403, `{"detail":"Forbidden"}`)

	err := c.Users.Delete(context.Background(), 4)
	assert.True(t, errors.IsForbidden(err))
	assert.True(t, c.Session.IsAuthenticated())
	assert.Equal(t, []string{"4"}, api.last().Query["user_id_to_delete"])
}

func TestCreateExpectsCreated(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("POST", "/event/create_event", 201, `{}`)

	err := c.Events.Create(context.Background(), types.EventCreate{Name: "Cena", Description: "Anual", Year: 2025})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Cena","description":"Anual","year":2025}`, string(api.last().Body))

	api.handle("POST", "/event/create_event", 200, `{}`)
	err = c.Events.Create(context.Background(), types.EventCreate{Name: "Cena", Description: "Anual", Year: 2025})
	require.Error(t, err)
	assert.Equal(t, errors.KindAPI, errors.KindOf(err))
}

func TestActivateUser(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("POST", "/user/user_update", 200, `{}`)

	require.NoError(t, c.Users.Activate(context.Background(), 12))
	assert.JSONEq(t, `{"id_usuario":12,"ind_estado":1}`, string(api.last().Body))
}

func TestMovementsFilters(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("GET", "/economic_movement/economic_movements_list", 200, `[]`)

	state := types.MovementReviewed
	_, err := c.Economic.Movements(context.Background(), types.EconomicMovementFilters{
		From:            "2025-01-01",
		State:           &state,
		GrantChargeable: types.Ptr(false),
	})
	require.NoError(t, err)

	q := api.last().Query
	assert.Equal(t, []string{"2025-01-01"}, q["fecha_creacion_from"])
	assert.Equal(t, []string{"9"}, q["ind_estado"])
	assert.Equal(t, []string{"false"}, q["imputable_subvencion"])
	assert.NotContains(t, q, "fecha_creacion_to")
	assert.NotContains(t, q, "id_evento")
}

func TestEventsDefaultYear(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	c.Events.now = func() time.Time { return time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC) }
	api.handle("GET", "/event/events_list", 200, `[{"event_id":1,"name":"Fiestas","description":"Agosto","year":2031,"month":8,"day":null}]`)

	events, err := c.Events.List(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, []string{"2031"}, api.last().Query["year"])
	assert.Equal(t, "08/2031", events[0].DateLabel())
}

func TestRevokeRoleSendsBody(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("DELETE", "/roles/remove_role_from_user", 200, `{}`)

	require.NoError(t, c.Roles.Revoke(context.Background(), 3, 5))
	assert.JSONEq(t, `{"user_id":3,"role_id":5}`, string(api.last().Body))
}

func TestInvoiceDownload(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.routes["GET /invoices/download_invoice"] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="F-2025-001.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}

	d, err := c.Invoices.Download(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "F-2025-001.pdf", d.Name)
	assert.Equal(t, "application/pdf", d.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), d.Content)
}

func TestAccountingUploadMultipart(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("POST", "/accounting_docs/upload_accounting_doc", 201, `{}`)

	err := c.Accounting.Upload(context.Background(), 7, "ticket", client.File{Name: "ticket.pdf", Content: []byte("%PDF")})
	require.NoError(t, err)

	last := api.last()
	assert.Equal(t, []string{"7"}, last.Query["movimiento_id"])
	assert.Equal(t, []string{"ticket"}, last.Query["nombre"])
	assert.Contains(t, last.Header.Get("Content-Type"), "multipart/form-data")
}

func TestMovementDecodeFailure(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("GET", "/economic_movement/economic_movement_detail", 200, `{"id_movimiento_economico":"seven"}`)

	_, err := c.Economic.Movement(context.Background(), 7)
	apiErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDecode, apiErr.Code)
}

func TestPermissionsLoadedOncePerSession(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("GET", "/user/my_permissions", 200, `["home"]`)

	for i := 0; i < 3; i++ {
		ok, err := c.Permissions.HasPermission(context.Background(), permission.Home)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 1, api.count("GET", "/user/my_permissions"))

	startSession(t, c)
	_, err := c.Permissions.HasPermission(context.Background(), permission.Home)
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("GET", "/user/my_permissions"))
}

func TestLogout(t *testing.T) {
	_, c := newTestContainer(t)
	startSession(t, c)
	c.Client.SetToken("fallback")

	c.Logout()

	assert.Empty(t, c.Session.Token())
	assert.Empty(t, c.Client.Token())
	assert.False(t, c.Permissions.Loaded())
}

func TestEndpointsInContract(t *testing.T) {
	doc, err := contract.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, doc.Check(Endpoints()))
	assert.Len(t, doc.Endpoints(), len(Endpoints()))
}

func TestCreateLink(t *testing.T) {
	api, c := newTestContainer(t)
	startSession(t, c)
	api.handle("POST", "/user/create_user_link", 200, `{"link":"https://example.org/registro/abc"}`)

	link, err := c.Users.CreateLink(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/registro/abc", link["link"])

	var body map[string]any
	assert.Error(t, json.Unmarshal(api.last().Body, &body))
}
