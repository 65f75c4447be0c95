package cmd

import (
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "rebuild parent/child relations from migrated records",
}

func init() {
	linkCmd.AddCommand(LinkMultiparts())
	linkCmd.AddCommand(LinkSerials())
}

func LinkMultiparts() *cobra.Command {
	command := &cobra.Command{
		Use:   "multiparts",
		Short: "Split multipart volumes and link them to their series",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return app.mig.LinkMultipartVolumes(cmd.Context())
		},
	}

	return command
}

func LinkSerials() *cobra.Command {
	command := &cobra.Command{
		Use:   "serials",
		Short: "Link documents and multiparts to their serials",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return app.mig.LinkSerials(cmd.Context())
		},
	}

	return command
}
