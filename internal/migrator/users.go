package migrator

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/bibkit/ilsmigrate/internal/dump"
	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/store"
)

// ImportUsers attaches legacy borrower ids to patrons already synced from
// the external user directory. A dump user without a synced patron is
// skipped under the default policy; the directory sync, not the migration,
// owns patron creation.
func (m *Migrator) ImportUsers(ctx context.Context, path string) error {
	reader, err := dump.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	users, err := dump.ReadList(reader)
	if err != nil {
		return err
	}

	for _, rec := range users {
		legacyID := rec.GetString("id")
		email := rec.GetString("email")
		fmt.Printf("Importing user %q(%s)...\n", legacyID, email)

		patron, err := m.PatronByPersonID(ctx, rec.GetString("ccid"))
		if err != nil {
			return err
		}
		if patron == nil {
			color.Red("User %s(%s) not synced via LDAP", legacyID, email)
			if m.policy.UnresolvedUser == ActionFail {
				return fmt.Errorf("user %s(%s) not synced: %w", legacyID, email, ErrUserMigration)
			}
			UsersLogger.Warnf("user %s(%s) skipped: not synced", legacyID, email)
			continue
		}

		patron.Set("legacy_id", legacyID)
		err = m.store.Transaction(ctx, func(tx store.Store) error {
			if err := tx.Update(ctx, model.RecTypePatron, patron); err != nil {
				return err
			}
			return tx.UpdateRemoteAccount(ctx, patron.PID(), map[string]any{"legacy_id": legacyID})
		})
		if err != nil {
			fmt.Println("Rolling back changes...")
			return err
		}

		if err := m.indexer.Index(ctx, model.RecTypePatron, patron); err != nil {
			return err
		}
	}

	return nil
}
