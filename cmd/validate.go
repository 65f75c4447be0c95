package cmd

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "audit the migrated relation graph",
}

func init() {
	validateCmd.AddCommand(ValidateSerials())
	validateCmd.AddCommand(ValidateMultiparts())
}

func ValidateSerials() *cobra.Command {
	command := &cobra.Command{
		Use:   "serials",
		Short: "Report serials whose relations disagree with their children",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return app.mig.ValidateSerialRecords(cmd.Context())
		},
	}

	return command
}

func ValidateMultiparts() *cobra.Command {
	command := &cobra.Command{
		Use:   "multiparts",
		Short: "Report multiparts whose relations disagree with their volumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return app.mig.ValidateMultipartRecords(cmd.Context())
		},
	}

	return command
}
