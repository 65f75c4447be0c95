package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) Create(ctx context.Context, rectype model.RecType, rec record.Record, recordUUID uuid.UUID) (record.Record, error) {
	if rec.PID() == "" {
		return nil, fmt.Errorf("%s record has no pid: %w", rectype, ErrValidation)
	}

	data, err := rec.JSON()
	if err != nil {
		return nil, fmt.Errorf("%s record not serializable: %w", rectype, ErrValidation)
	}

	row := &model.RecordRow{
		RecType:    string(rectype),
		PID:        rec.PID(),
		RecordUUID: recordUUID.String(),
		Data:       string(data),
	}
	if err := g.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create %s %s: %v: %w", rectype, rec.PID(), err, ErrValidation)
	}

	return rec, nil
}

func (g *GormStore) GetByPID(ctx context.Context, rectype model.RecType, pid string) (record.Record, error) {
	var row model.RecordRow
	err := g.db.WithContext(ctx).
		Where("rec_type = ? AND pid = ?", string(rectype), pid).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %s: %w", rectype, pid, ErrRecordNotFound)
	}
	if err != nil {
		return nil, err
	}

	rec, err := record.FromJSON([]byte(row.Data))
	if err != nil {
		logrus.Errorf("stored %s %s is corrupted: %v", rectype, pid, err)
		return nil, err
	}

	return rec, nil
}

func (g *GormStore) Update(ctx context.Context, rectype model.RecType, rec record.Record) error {
	if rec.PID() == "" {
		return fmt.Errorf("%s record has no pid: %w", rectype, ErrValidation)
	}

	data, err := rec.JSON()
	if err != nil {
		return fmt.Errorf("%s record not serializable: %w", rectype, ErrValidation)
	}

	result := g.db.WithContext(ctx).
		Model(&model.RecordRow{}).
		Where("rec_type = ? AND pid = ?", string(rectype), rec.PID()).
		Update("data", string(data))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", rectype, rec.PID(), ErrRecordNotFound)
	}

	return nil
}

func (g *GormStore) PIDs(ctx context.Context, rectype model.RecType) ([]string, error) {
	var pids []string
	err := g.db.WithContext(ctx).
		Model(&model.RecordRow{}).
		Where("rec_type = ?", string(rectype)).
		Order("id asc").
		Pluck("pid", &pids).Error
	return pids, err
}

func (g *GormStore) AddRelation(ctx context.Context, parentType model.RecType, parent record.Record, childType model.RecType, child record.Record, relationType, volume string) error {
	if err := checkRelation(parentType, parent, childType, relationType); err != nil {
		return err
	}

	edge := model.Relation{
		ParentPID:    parent.PID(),
		ParentType:   string(parentType),
		ChildPID:     child.PID(),
		ChildType:    string(childType),
		RelationType: relationType,
		Volume:       volume,
	}

	var count int64
	err := g.db.WithContext(ctx).
		Model(&model.Relation{}).
		Where("parent_pid = ? AND child_pid = ? AND relation_type = ?",
			edge.ParentPID, edge.ChildPID, edge.RelationType).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		logrus.Infof("relation %s: %s -> %s already exists", relationType, edge.ParentPID, edge.ChildPID)
		return nil
	}

	return g.db.WithContext(ctx).Create(&edge).Error
}

// checkRelation enforces the structural rules of the relation graph: only a
// multipart monograph owns multipart_monograph edges, only a serial owns
// serial edges, and children are records, never locations or loans.
func checkRelation(parentType model.RecType, parent record.Record, childType model.RecType, relationType string) error {
	if childType != model.RecTypeDocument && childType != model.RecTypeSeries {
		return fmt.Errorf("%s child cannot be a relation endpoint: %w", childType, ErrRelation)
	}

	switch relationType {
	case model.MultipartMonographRelation:
		if parentType != model.RecTypeSeries || parent.GetString("mode_of_issuance") != model.ModeMultipartMonograph {
			return fmt.Errorf("parent %s is not a multipart monograph: %w", parent.PID(), ErrRelation)
		}
		if childType != model.RecTypeDocument {
			return fmt.Errorf("multipart child %s is not a document: %w", parentType, ErrRelation)
		}
	case model.SerialRelation:
		if parentType != model.RecTypeSeries || parent.GetString("mode_of_issuance") != model.ModeSerial {
			return fmt.Errorf("parent %s is not a serial: %w", parent.PID(), ErrRelation)
		}
	default:
		return fmt.Errorf("unknown relation type %q: %w", relationType, ErrRelation)
	}

	return nil
}

func (g *GormStore) Relations(ctx context.Context, rectype model.RecType, pid string) (map[string][]RelationHit, error) {
	var edges []model.Relation
	err := g.db.WithContext(ctx).
		Where("parent_pid = ? OR child_pid = ?", pid, pid).
		Order("id asc").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}

	relations := make(map[string][]RelationHit)
	for _, edge := range edges {
		hit := RelationHit{Volume: edge.Volume}
		if edge.ParentPID == pid {
			hit.PID = edge.ChildPID
			hit.PIDType = model.RecType(edge.ChildType)
		} else {
			hit.PID = edge.ParentPID
			hit.PIDType = model.RecType(edge.ParentType)
		}
		relations[edge.RelationType] = append(relations[edge.RelationType], hit)
	}

	return relations, nil
}

func (g *GormStore) UpdateRemoteAccount(ctx context.Context, patronPID string, extra map[string]any) error {
	account := model.RemoteAccount{PatronPID: patronPID, ExtraData: "{}"}
	err := g.db.WithContext(ctx).
		Where("patron_pid = ?", patronPID).
		FirstOrCreate(&account).Error
	if err != nil {
		return err
	}

	merged := map[string]any{}
	if err := json.Unmarshal([]byte(account.ExtraData), &merged); err != nil {
		logrus.Errorf("remote account for %s is corrupted: %v", patronPID, err)
		merged = map[string]any{}
	}
	for key, value := range extra {
		merged[key] = value
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	account.ExtraData = string(data)

	return g.db.WithContext(ctx).Save(&account).Error
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(NewGormStore(tx))
	})
}
