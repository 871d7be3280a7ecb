package cli

import (
	"github.com/karmadeck/dbmigrate/internal/config"
	"github.com/spf13/cobra"
)

type playerOptions struct {
	Collection string
	BatchSize  int
	DryRun     bool
}

// newMigratePlayersCmd builds the "migrate-players" sub-command. Unlike the
// other two it takes the credential file as a required positional argument.
func newMigratePlayersCmd(storeBackend *string) *cobra.Command {
	opts := &playerOptions{}

	cmd := &cobra.Command{
		Use:   "migrate-players <credentials-file>",
		Short: "Rename the legacy karma fields on player documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runMigratePlayers(c.Context(), *storeBackend, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Collection, "collection", "c", "players", "Player collection name")
	cmd.Flags().IntVarP(&opts.BatchSize, "batch-size", "b", 100, "Page and batch size")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Transform and stage but skip commits")

	return cmd
}

type collectionOptions struct {
	Credentials string
	Source      string
	Target      string
	DryRun      bool
}

func newRestructureCodesCmd(storeBackend *string) *cobra.Command {
	opts := &collectionOptions{}

	cmd := &cobra.Command{
		Use:   "restructure-codes",
		Short: "Rebuild the redemption-code collection in the new schema",
		RunE: func(c *cobra.Command, args []string) error {
			return runRestructureCodes(c.Context(), *storeBackend, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Credentials, "credentials", config.DefaultCredentialsFile, "Path to the service-account JSON file")
	cmd.Flags().StringVar(&opts.Source, "source", "redemptionCodes", "Legacy code collection")
	cmd.Flags().StringVar(&opts.Target, "target", "redemptionCodesV2", "Target collection (should be fresh each run)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Transform and stage but skip commits")

	return cmd
}

func newCopyCollectionCmd(storeBackend *string) *cobra.Command {
	opts := &collectionOptions{}

	cmd := &cobra.Command{
		Use:   "copy-collection",
		Short: "Copy a collection to its final name, preserving document IDs",
		RunE: func(c *cobra.Command, args []string) error {
			return runCopyCollection(c.Context(), *storeBackend, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Credentials, "credentials", config.DefaultCredentialsFile, "Path to the service-account JSON file")
	cmd.Flags().StringVar(&opts.Source, "source", "redemptionCodesV2", "Collection to copy from")
	cmd.Flags().StringVar(&opts.Target, "target", "codes", "Collection to copy to")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Transform and stage but skip commits")

	return cmd
}
