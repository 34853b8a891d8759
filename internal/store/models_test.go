package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-04-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", d.String())

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("04/01/2025")
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestDateJSON(t *testing.T) {
	var p Player
	require.NoError(t, json.Unmarshal([]byte(`{"team_name":"Bears","player_no":"7","name":"Ruiz","birthday":"1998-03-14"}`), &p))
	assert.Equal(t, "1998-03-14", p.Birthday.String())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"birthday":"1998-03-14"`)

	var c Coach
	require.NoError(t, json.Unmarshal([]byte(`{"coach_no":"C1","name":"Cole","birthday":null}`), &c))
	assert.True(t, c.Birthday.IsZero())

	out, err = json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"birthday":null`)
}

func TestDateSQL(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 4, 1, 18, 30, 0, 0, time.FixedZone("X", 3600))))
	assert.Equal(t, "2025-04-01", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", v)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	v, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, NullString("").Valid)
	assert.True(t, NullString("x").Valid)
	assert.False(t, NullInt(0).Valid)
	assert.Equal(t, int64(42), NullInt(42).Int64)
}
