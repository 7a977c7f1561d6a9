package apperr

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("book: %w", MissingRequiredField("customer_name"))

	assert.True(t, Is(err, KindMissingRequiredField))
	assert.False(t, Is(err, KindValidation))
	assert.Equal(t, "customer_name", FieldOf(err))
}

func TestPersistence_UnwrapsDriverError(t *testing.T) {
	err := Persistence("rentals.create", sql.ErrConnDone)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Equal(t, KindPersistence, GetKind(err))
	assert.Contains(t, err.Error(), "rentals.create")
}

func TestGetKind_PlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, GetKind(fmt.Errorf("boom")))
	assert.False(t, Is(nil, KindUnknown))
}
