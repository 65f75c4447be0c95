package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var strictFlag bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ilsmigrate",
	Short: "legacy catalog to ILS migration tool",
	Example: `ilsmigrate db migrate
ilsmigrate import documents dump/documents.json.gz
ilsmigrate import parents --kind serial dump/serials.json
ilsmigrate import items dump/items.json --include B00123,B00124
ilsmigrate link multiparts
ilsmigrate link serials
ilsmigrate validate serials
ilsmigrate index reindex --rectype document`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false,
		"fail instead of skipping records with unresolved dependencies")

	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
