package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrors(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: codeUniqueViolation})
	fk := &pq.Error{Code: codeForeignKeyViolation}

	assert.True(t, Dialect.IsUniqueViolation(unique))
	assert.False(t, Dialect.IsForeignKeyViolation(unique))
	assert.True(t, Dialect.IsForeignKeyViolation(fk))
	assert.False(t, Dialect.IsUniqueViolation(errors.New("23505")))
	assert.False(t, Dialect.IsUniqueViolation(nil))
}
