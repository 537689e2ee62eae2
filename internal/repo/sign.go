package repo

import (
	"github.com/ralt/rpmsync/internal/signer"
	"github.com/ralt/rpmsync/internal/storage"
	"github.com/sirupsen/logrus"
)

// SignMetadata publishes an armored detached signature next to the
// summary document.
func SignMetadata(st storage.Storage, s signer.Signer) error {
	data, err := st.ReadFile(RepomdPath)
	if err != nil {
		return err
	}

	sig, err := s.SignDetached(data)
	if err != nil {
		return err
	}

	if err := st.WriteFile(RepomdPath+".asc", sig); err != nil {
		return err
	}

	logrus.Info("Successfully signed repository metadata file")
	return nil
}
