package db

import "github.com/jmoiron/sqlx"

// Dialect adapts queries written with '?' placeholders to the driver.
type Dialect struct {
	Driver Driver
}

func (d Dialect) bindType() int {
	if d.Driver == DriverPostgres {
		return sqlx.DOLLAR
	}
	return sqlx.QUESTION
}

// Rebind rewrites '?' placeholders for the driver ($1, $2, ... on Postgres).
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.bindType(), query)
}

// In expands slice arguments bound to "IN (?)" and rebinds the result.
func (d Dialect) In(query string, args ...any) (string, []any, error) {
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return d.Rebind(q), expanded, nil
}
