package port

import (
	"io"
	"time"
)

// FileSystem abstracts the destination directory operations the pipeline
// needs. Downloads are written to a temporary sibling and promoted only
// when complete, so a partial file is never visible under its final name.
type FileSystem interface {
	// EnsureDir creates the directory if it does not exist.
	EnsureDir(dir string) error

	// Exists reports whether a file is present at path.
	Exists(path string) bool

	// CreateTemp creates (truncating) the temporary sibling of dest and
	// returns a writer to it plus its path.
	CreateTemp(dest string) (io.WriteCloser, string, error)

	// Promote atomically renames the temporary sibling onto dest.
	Promote(dest string) error

	// RemoveTemp deletes the temporary sibling of dest if present.
	RemoveTemp(dest string) error

	// CleanStaleTemps removes temporary artifacts in dir older than the
	// given age and returns how many were deleted.
	CleanStaleTemps(dir string, olderThan time.Duration) (int, error)
}
