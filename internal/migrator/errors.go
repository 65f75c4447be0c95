package migrator

import "errors"

// Error kinds of the migration engine. Each entity resolves and validates
// against its own kind so callers can decide skip-vs-abort per entity with
// errors.Is.
var (
	// ErrDocumentMigration covers missing or inconsistent documents.
	ErrDocumentMigration = errors.New("document migration error")
	// ErrItemMigration covers missing items, missing internal locations and
	// unmodeled item data.
	ErrItemMigration = errors.New("item migration error")
	// ErrUserMigration covers ambiguous or inconsistent patron lookups.
	ErrUserMigration = errors.New("user migration error")
	// ErrLoanMigration covers loans referencing unmodeled or missing data.
	ErrLoanMigration = errors.New("loan migration error")
	// ErrMultipartMigration covers missing or duplicated multipart series.
	ErrMultipartMigration = errors.New("multipart migration error")
	// ErrSeriesMigration covers missing or duplicated serial series.
	ErrSeriesMigration = errors.New("series migration error")
	// ErrDuplicateVolumeKey marks two volume fragments of the same ordinal
	// carrying the same field. That is dump corruption, never recoverable.
	ErrDuplicateVolumeKey = errors.New("duplicate key in multipart volume data")
	// ErrAmbiguousKey marks a natural key matching more than one record.
	// Orchestrators never skip past it; duplicates mean the store is broken.
	ErrAmbiguousKey = errors.New("ambiguous natural key")
)
