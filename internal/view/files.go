package view

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/lasatanica/backoffice/internal/service"
	"github.com/lasatanica/backoffice/pkg/backoffice/client"
)

// readUpload loads a local file for a multipart upload
func readUpload(path string) (client.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return client.File{}, fmt.Errorf("ruta de archivo vacía")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return client.File{}, fmt.Errorf("leer %s: %w", path, err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return client.File{Name: filepath.Base(path), ContentType: contentType, Content: content}, nil
}

// saveDownload writes d into dir and returns the written path. The server
// supplied name is reduced to its base name.
func saveDownload(dir string, d *service.Download) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear %s: %w", dir, err)
	}

	name := filepath.Base(filepath.Clean("/" + d.Name))
	if name == "/" || name == "." {
		name = "descarga"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, d.Content, 0o600); err != nil {
		return "", fmt.Errorf("guardar %s: %w", path, err)
	}
	return path, nil
}
