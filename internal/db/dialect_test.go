package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect_Rebind(t *testing.T) {
	q := `SELECT id FROM moves WHERE owner_id = ? AND plan_name = ?`

	assert.Equal(t, q, Dialect{Driver: DriverSQLite}.Rebind(q))
	assert.Equal(t,
		`SELECT id FROM moves WHERE owner_id = $1 AND plan_name = $2`,
		Dialect{Driver: DriverPostgres}.Rebind(q))
}

func TestDialect_InExpandsSlices(t *testing.T) {
	q, args, err := Dialect{Driver: DriverPostgres}.In(
		`DELETE FROM moves WHERE owner_id = ? AND id IN (?)`, "u1", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM moves WHERE owner_id = $1 AND id IN ($2, $3, $4)`, q)
	assert.Equal(t, []any{"u1", "a", "b", "c"}, args)
}

func TestParseDriver(t *testing.T) {
	cases := map[string]Driver{
		"":           DriverSQLite,
		"sqlite":     DriverSQLite,
		"SQLite3":    DriverSQLite,
		"postgres":   DriverPostgres,
		"postgresql": DriverPostgres,
		" pgx ":      DriverPostgres,
	}
	for in, want := range cases {
		got, err := ParseDriver(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDriver("mysql")
	assert.Error(t, err)
}
