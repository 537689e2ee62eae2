package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ralt/rpmsync/internal/models"
	"github.com/sirupsen/logrus"
)

// FilesystemStorage implements Storage over a local directory tree.
type FilesystemStorage struct {
	root string
}

// NewFilesystemStorage creates a Storage rooted at dir.
func NewFilesystemStorage(dir string) *FilesystemStorage {
	return &FilesystemStorage{root: dir}
}

// Exists reports whether path is present under the root.
func (s *FilesystemStorage) Exists(path string) (bool, error) {
	_, err := os.Stat(s.abs(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, backendErr(path, err)
}

// ReadFile returns the full contents of path.
func (s *FilesystemStorage) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(s.abs(path))
	if err != nil {
		return nil, backendErr(path, err)
	}
	return data, nil
}

// WriteFile stores data at path, creating directories as needed.
func (s *FilesystemStorage) WriteFile(path string, data []byte) error {
	dest := s.abs(path)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return backendErr(path, err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return backendErr(path, err)
	}
	return nil
}

// Files lists every file under root recursively, as paths relative to
// the storage root.
func (s *FilesystemStorage) Files(root string) ([]string, error) {
	var files []string

	base := s.abs(root)
	err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, backendErr(root, fmt.Errorf("failed to list files: %w", err))
	}

	logrus.Debugf("Found %d files under %s", len(files), s.root)
	return files, nil
}

// Mtime returns path's modification time as a unix timestamp.
func (s *FilesystemStorage) Mtime(path string) (int64, error) {
	info, err := os.Stat(s.abs(path))
	if err != nil {
		return 0, backendErr(path, err)
	}
	return info.ModTime().Unix(), nil
}

// DownloadFile copies path out of the backend into the local file dest.
func (s *FilesystemStorage) DownloadFile(path, dest string) error {
	if err := copyFile(s.abs(path), dest); err != nil {
		return backendErr(path, err)
	}
	return nil
}

// SyncDir uploads the local directory localDir to path in the backend.
func (s *FilesystemStorage) SyncDir(localDir, path string) error {
	err := filepath.Walk(localDir, func(src string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(localDir, src)
		if err != nil {
			return err
		}
		return copyFile(src, s.abs(filepath.Join(path, rel)))
	})
	if err != nil {
		return backendErr(path, fmt.Errorf("failed to sync directory: %w", err))
	}
	return nil
}

func (s *FilesystemStorage) abs(path string) string {
	return filepath.Join(s.root, path)
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}

func backendErr(path string, err error) error {
	return &models.SyncError{Type: models.ErrBackend, Path: path, Err: err}
}
