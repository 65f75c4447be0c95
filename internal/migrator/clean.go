package migrator

import (
	"fmt"
	"strings"

	"github.com/bibkit/ilsmigrate/internal/record"
)

// itemStatusMap translates legacy circulation statuses to the target item
// statuses. Anything outside this table is unmodeled data.
var itemStatusMap = map[string]string{
	"on shelf":      "CAN_CIRCULATE",
	"on loan":       "CAN_CIRCULATE",
	"missing":       "MISSING",
	"for reference": "FOR_REFERENCE_ONLY",
	"in binding":    "IN_BINDING",
}

// legacy bookkeeping fields that are not part of the target item schema
var legacyItemFields = []string{
	"id",
	"id_bibrec",
	"id_crcLIBRARY",
	"creation_date",
	"modification_date",
}

// CleanItemRecord normalizes a raw item dump record in place: maps the
// legacy status, tidies the barcode and drops legacy-only fields. An
// unmodeled status is an item migration error, the caller decides whether
// that skips the record.
func CleanItemRecord(rec record.Record) error {
	status := strings.ToLower(strings.TrimSpace(rec.GetString("status")))
	mapped, ok := itemStatusMap[status]
	if !ok {
		return fmt.Errorf("unknown status %q for item %s: %w",
			rec.GetString("status"), rec.GetString("barcode"), ErrItemMigration)
	}
	rec.Set("status", mapped)

	rec.Set("barcode", strings.ToUpper(strings.TrimSpace(rec.GetString("barcode"))))

	if !rec.Has("medium") {
		rec.Set("medium", "PAPER")
	}
	if !rec.Has("circulation_restriction") {
		rec.Set("circulation_restriction", "NO_RESTRICTION")
	}

	for _, field := range legacyItemFields {
		rec.Delete(field)
	}

	return nil
}
