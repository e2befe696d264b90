package sqlstore

import (
	"database/sql"
	"strconv"
	"strings"
)

// Dialect captures what differs between the SQL engines the store runs on.
type Dialect struct {
	// Name identifies the engine in logs and errors.
	Name string

	// Schema creates every table and index. It must be idempotent.
	Schema string

	// Numbered switches `?` placeholders to `$1, $2, ...`.
	Numbered bool

	// SnapshotTx is used for multi-query reads that must observe one
	// consistent state. nil means the engine default.
	SnapshotTx *sql.TxOptions

	// IsUniqueViolation reports whether err is a uniqueness constraint failure.
	IsUniqueViolation func(err error) bool

	// IsForeignKeyViolation reports whether err is a reference constraint failure.
	IsForeignKeyViolation func(err error) bool
}

// rebind rewrites `?` placeholders for engines that number their parameters.
// Queries in this package never contain a literal question mark.
func (d Dialect) rebind(query string) string {
	if !d.Numbered || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) uniqueViolation(err error) bool {
	return err != nil && d.IsUniqueViolation != nil && d.IsUniqueViolation(err)
}

func (d Dialect) foreignKeyViolation(err error) bool {
	return err != nil && d.IsForeignKeyViolation != nil && d.IsForeignKeyViolation(err)
}
