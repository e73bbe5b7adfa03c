// Package storage keeps uploaded media files on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// sniffLen is how much of an upload is inspected to detect its type.
const sniffLen = 3072

// MediaStore writes images under root/<folder>/<uuid><ext> and returns the
// slash-separated path relative to root.
type MediaStore struct {
	root string
}

func NewMediaStore(root string) *MediaStore {
	return &MediaStore{root: root}
}

// SaveImage stores r if its content sniffs as an image.
func (m *MediaStore) SaveImage(_ context.Context, folder string, r io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if n == 0 || !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", domain.ErrInvalidImage, mt.String())
	}

	rel := path.Join(folder, uuid.NewString()+mt.Extension())
	full, err := m.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), r)); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close media file: %w", err)
	}
	return rel, nil
}

// Remove deletes a stored file. Missing files are ignored.
func (m *MediaStore) Remove(_ context.Context, rel string) error {
	full, err := m.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (m *MediaStore) resolve(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if clean == "/" || strings.Contains(rel, "..") {
		return "", fmt.Errorf("invalid media path %q", rel)
	}
	return filepath.Join(m.root, filepath.FromSlash(clean)), nil
}
