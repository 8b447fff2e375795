package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vertextoedge/bunkr-fetch/internal/port"
)

// tempSuffix marks in-flight downloads. A truncated transfer keeps its
// .temp artifact for diagnosis; only complete transfers are promoted.
const tempSuffix = ".temp"

// Manager handles local filesystem operations for the download directory
type Manager struct{}

// Ensure Manager implements port.FileSystem
var _ port.FileSystem = (*Manager)(nil)

// NewManager creates a new filesystem manager
func NewManager() *Manager {
	return &Manager{}
}

// TempPath returns the temporary sibling path for a destination file
func TempPath(dest string) string {
	return dest + tempSuffix
}

// EnsureDir ensures the directory exists
func (m *Manager) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create download dir: %w", err)
	}
	return nil
}

// Exists checks if a file exists at path
func (m *Manager) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CreateTemp creates the temporary sibling of dest, truncating any
// leftover from a previous attempt
func (m *Manager) CreateTemp(dest string) (io.WriteCloser, string, error) {
	tempPath := TempPath(dest)
	f, err := os.Create(tempPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create temp file: %w", err)
	}
	return f, tempPath, nil
}

// Promote atomically renames the temporary sibling onto dest
func (m *Manager) Promote(dest string) error {
	if err := os.Rename(TempPath(dest), dest); err != nil {
		return fmt.Errorf("failed to promote temp file: %w", err)
	}
	return nil
}

// RemoveTemp removes the temporary sibling of dest
func (m *Manager) RemoveTemp(dest string) error {
	if err := os.Remove(TempPath(dest)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete temp file: %w", err)
	}
	return nil
}

// CleanStaleTemps removes temp artifacts in dir older than the specified
// duration and returns the number deleted
func (m *Manager) CleanStaleTemps(dir string, olderThan time.Duration) (int, error) {
	count := 0
	threshold := time.Now().Add(-olderThan)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read download dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), tempSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(threshold) {
			if removeErr := os.Remove(filepath.Join(dir, entry.Name())); removeErr == nil {
				count++
			}
		}
	}
	return count, nil
}
