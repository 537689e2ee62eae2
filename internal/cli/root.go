package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rpmsync",
		Short: "Keep a yum repository's metadata in sync with its rpm archives",
		Long: `Rpmsync compares the rpm archives present in a repository against
its repodata index and folds the metadata of every archive not yet
recorded into the index.

The repository metadata is read from repodata/repomd.xml and the
primary/filelists documents it references; archives are discovered by
listing the repository root for *.rpm files.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewSyncCmd())
	rootCmd.AddCommand(NewSignCmd())

	return rootCmd
}
