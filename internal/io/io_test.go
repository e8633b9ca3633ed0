package ioutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_CreatesParentAndReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracks.csv")
	pop := 80

	table := &Table{
		Header: []string{"track_id", "popularity", "is_collab", "name"},
		Rows: [][]string{
			{"t1", FormatInt(&pop), "true", "Hello, World"},
			{"t2", FormatInt(nil), "false", ""},
		},
	}
	require.NoError(t, WriteCSV(path, table))

	records, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	got, err := records[0].Int("popularity")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 80, *got)
	assert.Equal(t, "Hello, World", records[0]["name"])

	missing, err := records[1].Int("popularity")
	require.NoError(t, err)
	assert.Nil(t, missing)

	collab, err := records[0].Bool("is_collab")
	require.NoError(t, err)
	assert.True(t, collab)

	assert.Nil(t, records[1].NullableString("name"))
}

func TestRecord_IntAcceptsFloatText(t *testing.T) {
	rec := Record{"n": "72.0", "bad": "seventy"}

	n, err := rec.Int("n")
	require.NoError(t, err)
	assert.Equal(t, 72, *n)

	_, err = rec.Int("bad")
	assert.Error(t, err)
}

func TestReadCSV_MissingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "doc.json")
	in := map[string][]string{"Simon & Garfunkel": {"Paul Simon"}}

	require.NoError(t, WriteJSON(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Simon & Garfunkel")

	var out map[string][]string
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, in, out)
}

func TestFormatNullableFloat(t *testing.T) {
	v := 0.25
	assert.Equal(t, "0.25", FormatNullableFloat(&v, "unavailable"))
	assert.Equal(t, "unavailable", FormatNullableFloat(nil, "unavailable"))
	assert.Equal(t, "", FormatString(nil))
}
