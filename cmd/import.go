package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bibkit/ilsmigrate/internal/dump"
	"github.com/bibkit/ilsmigrate/internal/migrator"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "import legacy dump files",
}

func init() {
	importCmd.AddCommand(ImportDocuments())
	importCmd.AddCommand(ImportParents())
	importCmd.AddCommand(ImportLocations())
	importCmd.AddCommand(ImportItems())
	importCmd.AddCommand(ImportUsers())
	importCmd.AddCommand(ImportLoans())
}

func ImportDocuments() *cobra.Command {
	var include string
	var fromRecordFiles bool

	command := &cobra.Command{
		Use:   "documents <dump>...",
		Short: "Import documents from legacy dumps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			if fromRecordFiles {
				return app.mig.ImportDocumentsFromRecordFile(cmd.Context(), args, dump.ParseInclude(include))
			}
			return app.mig.ImportDocumentsFromDump(cmd.Context(), args, dump.ParseInclude(include))
		},
	}
	command.Flags().StringVar(&include, "include", "", "comma separated legacy recids to import, empty for all")
	command.Flags().BoolVar(&fromRecordFiles, "records", false, "read keyed record files instead of flat dumps")

	return command
}

func ImportParents() *cobra.Command {
	var include string
	var kind string

	command := &cobra.Command{
		Use:   "parents <dump>",
		Short: "Import serial and multipart parent records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentKind := migrator.ParentKind(kind)
			if parentKind != migrator.ParentSerial && parentKind != migrator.ParentMultipart {
				return errors.New("--kind must be serial or multipart")
			}
			app := newAppContext()
			return app.mig.ImportParentsFromFile(cmd.Context(), args[0], parentKind, dump.ParseInclude(include))
		},
	}
	command.Flags().StringVar(&kind, "kind", "", "parent kind, serial or multipart")
	command.Flags().StringVar(&include, "include", "", "comma separated legacy recids to import, empty for all")

	return command
}

func ImportLocations() *cobra.Command {
	var include string

	command := &cobra.Command{
		Use:   "locations <dump>",
		Short: "Import libraries and internal locations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return app.mig.ImportInternalLocations(cmd.Context(), args[0], dump.ParseInclude(include))
		},
	}
	command.Flags().StringVar(&include, "include", "", "comma separated legacy ids to import, empty for all")

	return command
}

func ImportItems() *cobra.Command {
	var include string

	command := &cobra.Command{
		Use:   "items <dump>",
		Short: "Import items from the legacy circulation dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return app.mig.ImportItems(cmd.Context(), args[0], dump.ParseInclude(include))
		},
	}
	command.Flags().StringVar(&include, "include", "", "comma separated barcodes to import, empty for all")

	return command
}

func ImportUsers() *cobra.Command {
	command := &cobra.Command{
		Use:   "users <dump>",
		Short: "Attach legacy ids to synced patrons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return app.mig.ImportUsers(cmd.Context(), args[0])
		},
	}

	return command
}

func ImportLoans() *cobra.Command {
	command := &cobra.Command{
		Use:   "loans <dump>",
		Short: "Import legacy circulation loans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			return app.mig.ImportLoans(cmd.Context(), args[0])
		},
	}

	return command
}
