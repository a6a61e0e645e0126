package health

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lasatanica/backoffice/internal/contract"
	"github.com/lasatanica/backoffice/internal/errors"
	"github.com/lasatanica/backoffice/pkg/backoffice/client"
)

// Doer performs one API call
type Doer interface {
	Do(ctx context.Context, req client.Request) (*client.Response, error)
}

// APIChecker checks that the API answers HTTP at all. Any classified HTTP
// status counts as reachable; only 5xx and transport failures do not.
type APIChecker struct {
	api  Doer
	path string
}

// NewAPIChecker probes the API root without credentials
func NewAPIChecker(api Doer) *APIChecker {
	return &APIChecker{api: api, path: "/"}
}

// Name implements Checker
func (c *APIChecker) Name() string { return "api-reachable" }

// Check implements Checker
func (c *APIChecker) Check(ctx context.Context) *Result {
	resp, err := c.api.Do(ctx, client.Request{Method: http.MethodGet, Path: c.path, SkipAuth: true})
	if err == nil {
		return Healthy("API answered").WithDetail("status", resp.StatusCode)
	}

	apiErr, ok := errors.As(err)
	if !ok {
		return Unhealthy(err.Error())
	}
	switch apiErr.Kind {
	case errors.KindNetwork:
		return Unhealthy(apiErr.Error()).WithDetail("code", string(apiErr.Code))
	case errors.KindServer:
		return Degraded(fmt.Sprintf("API answered with status %d", apiErr.StatusCode)).
			WithDetail("status", apiErr.StatusCode)
	default:
		return Healthy("API answered").WithDetail("status", apiErr.StatusCode)
	}
}

// ContractChecker checks that the contract describes every endpoint the
// client calls
type ContractChecker struct {
	doc       *contract.Contract
	endpoints []contract.Endpoint
}

// NewContractChecker checks endpoints against doc
func NewContractChecker(doc *contract.Contract, endpoints []contract.Endpoint) *ContractChecker {
	return &ContractChecker{doc: doc, endpoints: endpoints}
}

// Name implements Checker
func (c *ContractChecker) Name() string { return "api-contract" }

// Check implements Checker
func (c *ContractChecker) Check(ctx context.Context) *Result {
	missing := c.doc.Check(c.endpoints)
	if len(missing) == 0 {
		return Healthy(fmt.Sprintf("%d endpoints described", len(c.endpoints)))
	}

	names := make([]string, len(missing))
	for i, e := range missing {
		names[i] = e.String()
	}
	return Degraded(fmt.Sprintf("%d endpoints missing from the contract", len(missing))).
		WithDetail("missing", strings.Join(names, ", "))
}

// DirChecker checks that a directory exists or can be created, and is
// writable
type DirChecker struct {
	name string
	dir  string
}

// NewDirChecker checks dir under the given checker name
func NewDirChecker(name, dir string) *DirChecker {
	return &DirChecker{name: name, dir: dir}
}

// Name implements Checker
func (c *DirChecker) Name() string { return c.name }

// Check implements Checker
func (c *DirChecker) Check(ctx context.Context) *Result {
	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return Unhealthy(fmt.Sprintf("cannot create %s", c.dir)).WithDetail("error", err.Error())
	}

	f, err := os.CreateTemp(c.dir, ".backoffice-probe-*")
	if err != nil {
		return Unhealthy(fmt.Sprintf("%s is not writable", c.dir)).WithDetail("error", err.Error())
	}
	name := f.Name()
	f.Close()
	os.Remove(name)

	return Healthy(filepath.Clean(c.dir) + " is writable")
}
