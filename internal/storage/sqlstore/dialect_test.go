package sqlstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		numbered bool
		query    string
		want     string
	}{
		{"positional untouched", false, "SELECT * FROM votes WHERE voter_id = ? AND election_id = ?", "SELECT * FROM votes WHERE voter_id = ? AND election_id = ?"},
		{"numbered", true, "SELECT * FROM votes WHERE voter_id = ? AND election_id = ?", "SELECT * FROM votes WHERE voter_id = $1 AND election_id = $2"},
		{"no placeholders", true, "SELECT COUNT(*) FROM votes", "SELECT COUNT(*) FROM votes"},
		{"many", true, "VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", "VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dialect{Numbered: tt.numbered}
			assert.Equal(t, tt.want, d.rebind(tt.query))
		})
	}
}

func TestViolationHelpersTolerateMissingFuncs(t *testing.T) {
	var d Dialect
	assert.False(t, d.uniqueViolation(errors.New("boom")))
	assert.False(t, d.foreignKeyViolation(errors.New("boom")))

	d.IsUniqueViolation = func(error) bool { return true }
	assert.True(t, d.uniqueViolation(errors.New("boom")))
	assert.False(t, d.uniqueViolation(nil))
}
