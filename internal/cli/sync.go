package cli

import (
	"fmt"

	"github.com/ralt/rpmsync/internal/models"
	"github.com/ralt/rpmsync/internal/repo"
	"github.com/ralt/rpmsync/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command
func NewSyncCmd() *cobra.Command {
	var config models.Config

	cmd := &cobra.Command{
		Use:   "sync <repo-dir>",
		Short: "Reconcile repository metadata with the archives in storage",
		Long: `Loads the existing repodata index (if any), lists the rpm archives
in the repository, and ingests every archive the index does not record
yet. With --bootstrap, an empty metadata skeleton is created first when
the repository has none.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.RepoDir = args[0]
			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Infof("Synchronizing repository: %s", config.RepoDir)

			st := storage.NewFilesystemStorage(config.RepoDir)

			if config.Bootstrap {
				if err := repo.Bootstrap(st, config.CreaterepoPath); err != nil {
					return err
				}
			}

			index, err := repo.New(st).Run(cmd.Context())
			if err != nil {
				return err
			}

			logrus.Infof("Index now holds %d packages", index.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&config.Bootstrap, "bootstrap", false, "Create empty repository metadata when none exists")
	cmd.Flags().StringVar(&config.CreaterepoPath, "createrepo", "createrepo", "Path to the createrepo binary used for bootstrapping")

	return cmd
}

func validateConfig(config *models.Config) error {
	if config.RepoDir == "" {
		return &models.SyncError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("repository directory is required"),
		}
	}
	return nil
}
