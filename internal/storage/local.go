package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalClipStore keeps clips under an uploads directory on the server's own
// disk and returns web-servable /uploads paths.
type LocalClipStore struct {
	basePath string
}

func NewLocalClipStore(basePath string) (*LocalClipStore, error) {
	for _, category := range []string{CategoryHighlights, CategoryThumbnails} {
		if err := os.MkdirAll(filepath.Join(basePath, category), 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return &LocalClipStore{basePath: basePath}, nil
}

func (ls *LocalClipStore) Store(ctx context.Context, localPath, category string) (string, error) {
	filename := filepath.Base(localPath)
	if strings.Contains(filepath.Clean(filename), "..") {
		return "", fmt.Errorf("invalid path")
	}

	destPath := filepath.Join(ls.basePath, category, filename)

	if err := moveFile(localPath, destPath); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", filename, err)
	}

	return fmt.Sprintf("/uploads/%s/%s", category, filename), nil
}

// moveFile renames when possible and falls back to copy+remove for
// cross-device moves out of the extractor's temp directory.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Remove(src)
}
