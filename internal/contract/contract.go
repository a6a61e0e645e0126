// Package contract exposes the embedded OpenAPI description of the
// back-office API and answers whether an endpoint belongs to it.
package contract

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

// Endpoint is one method and path of the API
type Endpoint struct {
	Method  string
	Path    string
	Summary string
	Tag     string
	Auth    bool
}

// String renders "METHOD /path"
func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

// Contract is a loaded and validated OpenAPI document
type Contract struct {
	doc *openapi3.T
}

// Load parses and validates the embedded document
func Load(ctx context.Context) (*Contract, error) {
	return Parse(ctx, document)
}

// Parse loads and validates an OpenAPI document
func Parse(ctx context.Context, data []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load API contract: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid API contract: %w", err)
	}

	return &Contract{doc: doc}, nil
}

// Title returns the document title and version
func (c *Contract) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", c.doc.Info.Title, c.doc.Info.Version)
}

// Allows reports whether method and path are described by the contract
func (c *Contract) Allows(method, path string) bool {
	if c.doc.Paths == nil {
		return false
	}
	item := c.doc.Paths.Find(normalizePath(path))
	if item == nil {
		return false
	}
	return item.GetOperation(strings.ToUpper(method)) != nil
}

// Endpoints lists every operation sorted by path then method
func (c *Contract) Endpoints() []Endpoint {
	var endpoints []Endpoint
	if c.doc.Paths == nil {
		return endpoints
	}

	for path, item := range c.doc.Paths.Map() {
		for method, op := range item.Operations() {
			e := Endpoint{
				Method:  method,
				Path:    path,
				Summary: op.Summary,
				Auth:    requiresToken(op),
			}
			if len(op.Tags) > 0 {
				e.Tag = op.Tags[0]
			}
			endpoints = append(endpoints, e)
		}
	}

	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].Path != endpoints[j].Path {
			return endpoints[i].Path < endpoints[j].Path
		}
		return endpoints[i].Method < endpoints[j].Method
	})
	return endpoints
}

// Check returns the endpoints not described by the contract
func (c *Contract) Check(endpoints []Endpoint) []Endpoint {
	var missing []Endpoint
	for _, e := range endpoints {
		if !c.Allows(e.Method, e.Path) {
			missing = append(missing, e)
		}
	}
	return missing
}

func requiresToken(op *openapi3.Operation) bool {
	for _, p := range op.Parameters {
		if p.Value != nil && p.Value.In == openapi3.ParameterInQuery && p.Value.Name == "token" {
			return true
		}
	}
	return false
}

func normalizePath(path string) string {
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}
