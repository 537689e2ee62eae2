package models

// Config contains configuration for a synchronization run
type Config struct {
	// Root directory of the repository in the storage backend
	RepoDir string

	// Bootstrap the repository with createrepo when no metadata exists yet
	Bootstrap bool

	// Path to the createrepo binary used for bootstrapping
	CreaterepoPath string

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}
