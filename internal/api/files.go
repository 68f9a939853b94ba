package api

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DiskReceipts keeps uploaded receipt files on local disk and serves them
// under /files/.
type DiskReceipts struct {
	dir     string
	baseURL string
}

// NewDiskReceipts ensures the storage directory exists.
func NewDiskReceipts(dir, baseURL string) (*DiskReceipts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("api: receipts dir: %w", err)
	}
	return &DiskReceipts{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the storage directory for the static file route.
func (d *DiskReceipts) Dir() string { return d.dir }

// Save writes the receipt and returns its public URL.
func (d *DiskReceipts) Save(_ context.Context, name string, content []byte) (string, error) {
	name = filepath.Base(name)
	if err := os.WriteFile(filepath.Join(d.dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("api: write receipt: %w", err)
	}
	return d.baseURL + "/files/" + url.PathEscape(name), nil
}
