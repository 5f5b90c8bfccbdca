// Package storage is the object storage collaborator. Uploaded files are
// written to an afero filesystem and served under a public base URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// DefaultMaxBytes is the upload ceiling.
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// File is an upload candidate.
type File struct {
	Name string
	Size int64
	Body io.Reader
}

// Uploader stores files and returns their public URL.
type Uploader struct {
	fs       afero.Fs
	baseURL  string
	maxBytes int64
	logger   *zap.Logger
}

// NewUploader creates an Uploader rooted at the filesystem fs.
func NewUploader(fs afero.Fs, baseURL string, maxBytes int64, logger *zap.Logger) *Uploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Uploader{fs: fs, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes, logger: logger}
}

// NewOSUploader stores files under dir on the local disk.
func NewOSUploader(dir, baseURL string, maxBytes int64, logger *zap.Logger) (*Uploader, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return NewUploader(afero.NewBasePathFs(osFs, dir), baseURL, maxBytes, logger), nil
}

// Upload writes f into folder and returns its URL. Files over the ceiling are
// rejected before anything is written.
func (u *Uploader) Upload(ctx context.Context, f File, folder string) (string, error) {
	if f.Size > u.maxBytes {
		return "", domain.NewFieldValidationError("photo", fmt.Sprintf("file size must be less than %dMB", u.maxBytes/(1024*1024)))
	}
	if err := ctx.Err(); err != nil {
		return "", domain.NewCollaboratorError("object storage", err)
	}

	folder = sanitizeFolder(folder)
	name := uuid.NewString() + strings.ToLower(filepath.Ext(f.Name))
	key := path.Join(folder, name)

	if err := u.fs.MkdirAll(folder, 0o755); err != nil {
		return "", domain.NewCollaboratorError("object storage", err)
	}
	out, err := u.fs.Create(key)
	if err != nil {
		return "", domain.NewCollaboratorError("object storage", err)
	}

	// The declared size can lie; cap what is actually read.
	n, copyErr := io.Copy(out, io.LimitReader(f.Body, u.maxBytes+1))
	closeErr := out.Close()
	if copyErr == nil && n > u.maxBytes {
		_ = u.fs.Remove(key)
		return "", domain.NewFieldValidationError("photo", fmt.Sprintf("file size must be less than %dMB", u.maxBytes/(1024*1024)))
	}
	if copyErr != nil || closeErr != nil {
		_ = u.fs.Remove(key)
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", domain.NewCollaboratorError("object storage", copyErr)
	}

	u.logger.Info("file uploaded", zap.String("key", key), zap.Int64("bytes", n))
	return u.baseURL + "/" + key, nil
}

// Delete removes a file previously returned by Upload. URLs outside the
// base URL are rejected.
func (u *Uploader) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return domain.NewCollaboratorError("object storage", err)
	}
	key, ok := strings.CutPrefix(url, u.baseURL+"/")
	if !ok || key == "" || path.Clean("/"+key) != "/"+key {
		return domain.NewFieldValidationError("photo", "not an uploaded file")
	}
	if err := u.fs.Remove(key); err != nil {
		return domain.NewCollaboratorError("object storage", err)
	}
	u.logger.Info("file deleted", zap.String("key", key))
	return nil
}

func sanitizeFolder(folder string) string {
	cleaned := path.Clean("/" + strings.ReplaceAll(folder, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "uploads"
	}
	return cleaned
}
