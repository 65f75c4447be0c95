// Package pid mints permanent identifiers for records, one sequence per
// rectype. PIDs are independent of any legacy natural key.
package pid

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bibkit/ilsmigrate/internal/model"
)

var pidPrefixes = map[model.RecType]string{
	model.RecTypeDocument:         "doc",
	model.RecTypeSeries:           "ser",
	model.RecTypeInternalLocation: "iloc",
	model.RecTypeLibrary:          "lib",
	model.RecTypeItem:             "itm",
	model.RecTypeLoan:             "loan",
	model.RecTypePatron:           "pat",
}

// Provider is a minted identifier, bound to the record uuid it was created
// for.
type Provider struct {
	PID        string
	ObjectUUID uuid.UUID
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// Registry hands out providers backed by the pid_sequences table.
type Registry struct {
	db *gorm.DB
}

// Create mints the next pid for the rectype. Sequence gaps from rolled-back
// batches are fine; pids only need to be unique, not dense.
func (r *Registry) Create(ctx context.Context, rectype model.RecType, objectUUID uuid.UUID) (*Provider, error) {
	prefix, ok := pidPrefixes[rectype]
	if !ok {
		return nil, fmt.Errorf("no identifier provider for rectype %q", rectype)
	}

	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq := model.PidSequence{RecType: string(rectype), Next: 1}
		if err := tx.Where("rec_type = ?", string(rectype)).
			FirstOrCreate(&seq).Error; err != nil {
			return err
		}

		next = seq.Next
		seq.Next++
		return tx.Save(&seq).Error
	})
	if err != nil {
		return nil, err
	}

	return &Provider{
		PID:        fmt.Sprintf("%s%d", prefix, next),
		ObjectUUID: objectUUID,
	}, nil
}
