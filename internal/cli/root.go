// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var storeBackend string

	rootCmd := &cobra.Command{
		Use:   "dbmigrate",
		Short: "dbmigrate - one-off data migrations for the karmadeck document store",
		Long: `dbmigrate runs the one-off karmadeck data migrations: renaming the
legacy karma fields on player documents, restructuring the redemption-code
collection into the new schema, and copying a collection to its final name.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "Document store backend: firestore (default) or mongo")

	rootCmd.AddCommand(newMigratePlayersCmd(&storeBackend))
	rootCmd.AddCommand(newRestructureCodesCmd(&storeBackend))
	rootCmd.AddCommand(newCopyCollectionCmd(&storeBackend))

	return rootCmd
}
