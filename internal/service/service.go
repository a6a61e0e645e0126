// Package service wraps the back-office API endpoints, one service per
// resource, and wires them together in Container.
package service

import (
	"context"
	"fmt"
	"mime"
	"net/http"

	"github.com/lasatanica/backoffice/internal/errors"
	"github.com/lasatanica/backoffice/pkg/backoffice/client"
)

// Doer performs one API call
type Doer interface {
	Do(ctx context.Context, req client.Request) (*client.Response, error)
}

// Download is a file returned by the API
type Download struct {
	Name        string
	ContentType string
	Content     []byte
}

func get[T any](ctx context.Context, api Doer, path string, query map[string]any) (T, error) {
	var out T
	resp, err := api.Do(ctx, client.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// send performs a mutating call and checks the success status the endpoint
// documents
func send(ctx context.Context, api Doer, req client.Request, want int) error {
	resp, err := api.Do(ctx, req)
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		return errors.NewStatusError(resp.StatusCode, fmt.Sprintf("expected status %d", want))
	}
	return nil
}

func download(ctx context.Context, api Doer, path string, query map[string]any, fallback string) (*Download, error) {
	resp, err := api.Do(ctx, client.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}

	d := &Download{
		Name:        fallback,
		ContentType: resp.Header.Get("Content-Type"),
		Content:     resp.Body,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		d.Name = params["filename"]
	}
	return d, nil
}
