package repo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ralt/rpmsync/internal/models"
	"github.com/ralt/rpmsync/internal/storage"
	"github.com/sirupsen/logrus"
)

// Bootstrap ensures the repository has a metadata skeleton: when no
// summary document exists yet, createrepo generates an empty repodata
// directory in local scratch space and it is synced into storage.
func Bootstrap(st storage.Storage, createrepoPath string) error {
	ok, err := st.Exists(RepomdPath)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	if createrepoPath == "" {
		createrepoPath = "createrepo"
	}

	tmpdir, err := os.MkdirTemp("", "rpmsync-bootstrap-")
	if err != nil {
		return &models.SyncError{Type: models.ErrBackend, Err: err}
	}
	defer os.RemoveAll(tmpdir)

	logrus.Infof("Bootstrapping empty repository metadata with %s", createrepoPath)

	cmd := exec.Command(createrepoPath, "--no-database", tmpdir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return &models.SyncError{
			Type: models.ErrExternalTool,
			Path: createrepoPath,
			Err:  fmt.Errorf("%w: %s", err, out),
		}
	}

	return st.SyncDir(filepath.Join(tmpdir, "repodata"), "repodata")
}
