package postcode

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
	"github.com/thomhuang/MonumentsByPostcode/pkg/fetch"
)

const postcodesCSV = `postcode,eastings,northings,district
NE47,385000,564000,Northumberland
NE46,392000,564500,Northumberland
YO1,460000,452000,York
BAD1,abc,452000,Nowhere
BAD2,,,Nowhere
DUP1,oops,1,First
DUP1,410000,420000,Second
DUP1,411000,421000,Third
`

func TestProcessPostcodeFile(t *testing.T) {
	records, err := processPostcodeFile(strings.NewReader(postcodesCSV), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 8)

	assert.Equal(t, Record{Postcode: "NE47", Eastings: 385000, Northings: 564000, Valid: true}, records[0])

	assert.False(t, records[3].Valid)
	assert.True(t, errors.Is(records[3].Err, domain.ErrInvalidCoordinate))
	assert.False(t, records[4].Valid)
}

func TestProcessPostcodeFileHeader(t *testing.T) {
	t.Run("columns in any order and case", func(t *testing.T) {
		in := "Northings,POSTCODE,Eastings\n564000,NE47,385000\n"
		records, err := processPostcodeFile(strings.NewReader(in), zap.NewNop())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, orb.Point{385000, 564000}, records[0].Point())
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := processPostcodeFile(strings.NewReader("postcode,eastings\nNE47,1\n"), zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("ragged rows are skipped", func(t *testing.T) {
		in := "postcode,eastings,northings\nNE47,385000\nNE46,392000,564500\n"
		records, err := processPostcodeFile(strings.NewReader(in), zap.NewNop())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "NE46", records[0].Postcode)
	})
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"385000", 385000, true},
		{" 385000.5 ", 385000.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCoordinate(tt.in)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTableResolve(t *testing.T) {
	records, err := processPostcodeFile(strings.NewReader(postcodesCSV), zap.NewNop())
	require.NoError(t, err)
	table := NewTable(records)

	assert.Equal(t, 8, table.Len())
	assert.Equal(t, 3, table.InvalidCount())

	t.Run("found", func(t *testing.T) {
		r, err := table.Resolve("YO1")
		require.NoError(t, err)
		assert.Equal(t, orb.Point{460000, 452000}, r.Point())
	})

	t.Run("case and space insensitive", func(t *testing.T) {
		r, err := table.Resolve("  ne47 ")
		require.NoError(t, err)
		assert.Equal(t, "NE47", r.Postcode)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := table.Resolve("ZZ99")
		assert.True(t, errors.Is(err, domain.ErrPostcodeNotFound))
	})

	t.Run("only invalid coordinates", func(t *testing.T) {
		_, err := table.Resolve("BAD1")
		assert.True(t, errors.Is(err, domain.ErrInvalidCoordinate))
		assert.False(t, errors.Is(err, domain.ErrPostcodeNotFound))
	})

	t.Run("duplicate takes first valid row", func(t *testing.T) {
		assert.Equal(t, 3, table.Matches("DUP1"))
		r, err := table.Resolve("DUP1")
		require.NoError(t, err)
		assert.Equal(t, orb.Point{410000, 420000}, r.Point())
	})
}

func TestIndexNearest(t *testing.T) {
	records, err := processPostcodeFile(strings.NewReader(postcodesCSV), zap.NewNop())
	require.NoError(t, err)
	idx := NewIndex(NewTable(records))

	// invalid rows are not indexed
	assert.Equal(t, 5, idx.Size())

	code, ok := idx.Nearest(orb.Point{391000, 564400})
	require.True(t, ok)
	assert.Equal(t, "NE46", code)

	code, ok = idx.Nearest(orb.Point{459000, 451000})
	require.True(t, ok)
	assert.Equal(t, "YO1", code)

	empty := NewIndex(NewTable(nil))
	_, ok = empty.Nearest(orb.Point{0, 0})
	assert.False(t, ok)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "englishpostcodes3.csv")
	require.NoError(t, os.WriteFile(p, []byte(postcodesCSV), 0644))

	src := NewFileSource(p, "", fetch.New(time.Second), zap.NewNop())
	table, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, table.Len())

	t.Run("missing file", func(t *testing.T) {
		src := NewFileSource(filepath.Join(dir, "nope.csv"), "", fetch.New(time.Second), zap.NewNop())
		_, err := src.Load(context.Background())
		assert.True(t, errors.Is(err, domain.ErrDataLoad))
	})

	t.Run("empty file", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(empty, nil, 0644))
		src := NewFileSource(empty, "", fetch.New(time.Second), zap.NewNop())
		_, err := src.Load(context.Background())
		assert.True(t, errors.Is(err, domain.ErrDataLoad))
	})
}

func TestSQLSource(t *testing.T) {
	t.Run("rejects table names that are not identifiers", func(t *testing.T) {
		src := NewSQLSource("postgres://localhost/postcodes", "postcodes; drop table x", zap.NewNop())
		_, err := src.Load(context.Background())
		assert.True(t, errors.Is(err, domain.ErrDataLoad))
	})

	t.Run("rows are coerced like csv cells", func(t *testing.T) {
		rows := []postcodeRow{
			{Postcode: "NE47", Eastings: sql.NullString{String: "385000", Valid: true}, Northings: sql.NullString{String: "564000", Valid: true}},
			{Postcode: "BAD1", Eastings: sql.NullString{}, Northings: sql.NullString{String: "1", Valid: true}},
		}
		records := rowsToRecords(rows, zap.NewNop())
		require.Len(t, records, 2)
		assert.True(t, records[0].Valid)
		assert.False(t, records[1].Valid)
	})
}
