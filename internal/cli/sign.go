package cli

import (
	"fmt"

	"github.com/ralt/rpmsync/internal/models"
	"github.com/ralt/rpmsync/internal/repo"
	"github.com/ralt/rpmsync/internal/signer"
	"github.com/ralt/rpmsync/internal/storage"
	"github.com/spf13/cobra"
)

// NewSignCmd creates the sign command
func NewSignCmd() *cobra.Command {
	var config models.Config

	cmd := &cobra.Command{
		Use:   "sign <repo-dir>",
		Short: "Publish a detached signature for the repository metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.RepoDir = args[0]
			if config.GPGKeyPath == "" {
				return &models.SyncError{
					Type: models.ErrInvalidConfig,
					Err:  fmt.Errorf("gpg-key is required"),
				}
			}

			s, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
			if err != nil {
				return &models.SyncError{
					Type: models.ErrExternalTool,
					Path: "gpg",
					Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
				}
			}

			st := storage.NewFilesystemStorage(config.RepoDir)
			return repo.SignMetadata(st, s)
		},
	}

	cmd.Flags().StringVarP(&config.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key")
	cmd.Flags().StringVarP(&config.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}
