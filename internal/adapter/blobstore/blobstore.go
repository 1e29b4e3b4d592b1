// Package blobstore persists uploaded response files. Keys are relative,
// slash-separated paths of the form <userID>/<requestID>-<unixms>.pdf.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/korima-app/korima-backend/internal/config"
	"github.com/korima-app/korima-backend/internal/domain"
)

// Store is implemented by every backend. Delete of a missing key succeeds so
// that cleanup sweeps can be re-run.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ErrInvalidKey is returned for keys that are empty, absolute or escape the
// store root.
var ErrInvalidKey = errors.New("blobstore: invalid key")

// New builds the backend selected by cfg.Backend.
func New(cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "local":
		return NewLocal(cfg.LocalDir)
	case "ftp":
		return NewFTP(FTPConfig{
			Addr:     fmt.Sprintf("%s:%d", cfg.FTPHost, cfg.FTPPort),
			User:     cfg.FTPUser,
			Password: cfg.FTPPassword,
			BaseDir:  cfg.FTPBaseDir,
			Timeout:  10 * time.Second,
		}, logger), nil
	default:
		return nil, fmt.Errorf("blobstore: unknown backend %q", cfg.Backend)
	}
}

// ResponseKey builds the storage key for a file uploaded by userID toward
// requestID at the given instant.
func ResponseKey(userID, requestID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s/%s-%d.pdf", userID, requestID, at.UnixMilli())
}

// cleanKey validates key and returns it in canonical form.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// sniffLen is how many bytes http.DetectContentType looks at.
const sniffLen = 512

// SniffPDF reads the head of r and reports whether it is a PDF document. The
// returned reader replays the consumed bytes followed by the rest of r.
func SniffPDF(r io.Reader) (io.Reader, bool, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, false, fmt.Errorf("blobstore: sniff: %w", err)
	}
	head = head[:n]
	ok := http.DetectContentType(head) == "application/pdf"
	return io.MultiReader(bytes.NewReader(head), r), ok, nil
}

func notFound(key string) error {
	return fmt.Errorf("blob %s: %w", key, domain.ErrNotFound)
}
