package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

var (
	// ErrRecordNotFound is returned when no record exists for a pid.
	ErrRecordNotFound = errors.New("record not found")
	// ErrValidation is returned when the store rejects a record.
	ErrValidation = errors.New("record validation failed")
	// ErrRelation is returned on a structurally invalid relation edge.
	ErrRelation = errors.New("invalid record relation")
)

// RelationHit is one endpoint of a relation edge as seen from the other
// endpoint.
type RelationHit struct {
	PID     string
	PIDType model.RecType
	Volume  string
}

type Store interface {
	// Create persists a new record under the given rectype. The record must
	// already carry its minted "pid".
	Create(ctx context.Context, rectype model.RecType, rec record.Record, recordUUID uuid.UUID) (record.Record, error)
	// GetByPID retrieves a record by pid.
	GetByPID(ctx context.Context, rectype model.RecType, pid string) (record.Record, error)
	// Update commits a changed record back to the store, by its pid.
	Update(ctx context.Context, rectype model.RecType, rec record.Record) error
	// PIDs lists every pid stored under the rectype, in creation order.
	PIDs(ctx context.Context, rectype model.RecType) ([]string, error)
	// AddRelation creates a parent->child relation edge. Adding an edge that
	// already exists is a no-op, so linking passes can be re-run.
	AddRelation(ctx context.Context, parentType model.RecType, parent record.Record, childType model.RecType, child record.Record, relationType, volume string) error
	// Relations returns the relation edges touching a record, keyed by
	// relation type. Each hit is the opposite endpoint of an edge.
	Relations(ctx context.Context, rectype model.RecType, pid string) (map[string][]RelationHit, error)
	// UpdateRemoteAccount merges extra metadata into a patron's remote
	// account, creating the account when missing.
	UpdateRemoteAccount(ctx context.Context, patronPID string, extra map[string]any) error
	Transaction(ctx context.Context, f func(tx Store) error) error
}
