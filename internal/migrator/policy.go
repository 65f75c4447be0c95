package migrator

// Action decides what a batch runner does when a provisional condition hits.
type Action int

const (
	// ActionSkip logs the record and moves on.
	ActionSkip Action = iota
	// ActionFail raises the entity's migration error and aborts the run.
	ActionFail
)

// Policy makes the retryable-vs-fatal classification explicit for the
// conditions the source system left undecided ("until more data"). Hard
// invariant violations (ambiguous keys, unknown loan states, duplicate
// volume keys) are always fatal and take no policy knob.
type Policy struct {
	// UnresolvedUser applies when a dump user has no synced patron.
	UnresolvedUser Action
	// LoanMissingItem applies when a loan's item barcode resolves to nothing.
	LoanMissingItem Action
	// MultipartNotFound applies when a flagged document has no owning
	// multipart series in the index.
	MultipartNotFound Action
}

// DefaultPolicy matches the legacy migration's current behavior: skip and
// warn.
func DefaultPolicy() Policy {
	return Policy{
		UnresolvedUser:    ActionSkip,
		LoanMissingItem:   ActionSkip,
		MultipartNotFound: ActionSkip,
	}
}

// StrictPolicy upgrades every provisional skip to a failure.
func StrictPolicy() Policy {
	return Policy{
		UnresolvedUser:    ActionFail,
		LoanMissingItem:   ActionFail,
		MultipartNotFound: ActionFail,
	}
}
