package metrics

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasatanica/backoffice/internal/errors"
)

func TestObserveRequestSuccess(t *testing.T) {
	_, m := NewRegistry()

	m.ObserveRequest("GET", "/user/me", 200, nil, 120*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "/user/me", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.APIDuration))
	assert.Equal(t, 0, testutil.CollectAndCount(m.Errors))
}

func TestObserveRequestFailure(t *testing.T) {
	_, m := NewRegistry()

	m.ObserveRequest("POST", "/auth/login", 401, errors.NewUnauthorizedError("bad"), time.Millisecond)
	m.ObserveRequest("GET", "/user/me", 0, errors.NewTransportError(stderrors.New("refused")), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("POST", "/auth/login", "AuthenticationError")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "/user/me", "NetworkError")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("AUTH-001", "AuthenticationError")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("NET-002", "NetworkError")))

	// no response, no latency sample
	assert.Equal(t, 1, testutil.CollectAndCount(m.APIDuration))
}

func TestRecordError(t *testing.T) {
	_, m := NewRegistry()

	m.RecordError(nil)
	m.RecordError(stderrors.New("plain"))
	m.RecordError(errors.NewServerError(502, "gateway"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("unknown", "unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("SRV-001", "ServerError")))
}

func TestObserveNavigation(t *testing.T) {
	_, m := NewRegistry()

	m.ObserveNavigation("/users", "mounted")
	m.ObserveNavigation("/users", "mounted")
	m.ObserveNavigation("/admin", "denied")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Navigations.WithLabelValues("/users", "mounted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues("/admin", "denied")))
}

func TestWriteFile(t *testing.T) {
	reg, m := NewRegistry()
	m.ObserveNavigation("/home", "mounted")

	path := filepath.Join(t.TempDir(), "nested", "backoffice.prom")
	require.NoError(t, WriteFile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `backoffice_navigations_total{outcome="mounted",route="/home"} 1`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	_, a := NewRegistry()
	_, b := NewRegistry()

	a.ObserveNavigation("/home", "mounted")

	assert.Equal(t, 0, testutil.CollectAndCount(b.Navigations))
}
