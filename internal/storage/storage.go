// Package storage abstracts the backend holding the repository: the
// archives, the repodata documents, and nothing else. All paths are
// relative to a single repository root.
package storage

// Storage is the capability contract the reconciliation engine consumes.
type Storage interface {
	// Exists reports whether path is present in the backend.
	Exists(path string) (bool, error)

	// ReadFile returns the full contents of path.
	ReadFile(path string) ([]byte, error)

	// WriteFile stores data at path, replacing any previous content.
	WriteFile(path string, data []byte) error

	// Files lists every file under root, recursively, as relative paths.
	Files(root string) ([]string, error)

	// Mtime returns path's modification time as a unix timestamp.
	Mtime(path string) (int64, error)

	// DownloadFile copies path out of the backend into the local file
	// dest.
	DownloadFile(path, dest string) error

	// SyncDir uploads the local directory localDir to path in the
	// backend.
	SyncDir(localDir, path string) error
}
