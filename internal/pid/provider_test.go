package pid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/tester"
)

func TestRegistry_Create(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	registry := NewRegistry(tester.TestDB())
	ctx := context.TODO()

	first, err := registry.Create(ctx, model.RecTypeDocument, uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, "doc1", first.PID)

	second, err := registry.Create(ctx, model.RecTypeDocument, uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, "doc2", second.PID)

	// sequences are independent per rectype
	serial, err := registry.Create(ctx, model.RecTypeSeries, uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, "ser1", serial.PID)

	item, err := registry.Create(ctx, model.RecTypeItem, uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, "itm1", item.PID)
}

func TestRegistry_CreateUnknownRecType(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	registry := NewRegistry(tester.TestDB())
	_, err := registry.Create(context.TODO(), model.RecType("vessel"), uuid.New())
	assert.Error(t, err)
}
