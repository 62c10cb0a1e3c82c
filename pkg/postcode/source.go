package postcode

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
	"github.com/thomhuang/MonumentsByPostcode/pkg/fetch"
)

// FileSource reads the postcode csv from disk, http(s) or s3, optionally inside a zip.
type FileSource struct {
	Path  string
	Entry string

	fetcher *fetch.Fetcher
	log     *zap.Logger
}

func NewFileSource(path, entry string, fetcher *fetch.Fetcher, log *zap.Logger) *FileSource {
	return &FileSource{
		Path:    path,
		Entry:   entry,
		fetcher: fetcher,
		log:     log,
	}
}

func (s *FileSource) Load(ctx context.Context) (*Table, error) {
	rc, err := s.fetcher.Open(ctx, s.Path, s.Entry, ".csv")
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrDataLoad, "opening postcodes %s", s.Path)
	}
	defer rc.Close()

	records, err := processPostcodeFile(rc, s.log)
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrDataLoad, "reading postcodes %s", s.Path)
	}

	table := NewTable(records)
	s.log.Debug("postcodes loaded",
		zap.String("path", s.Path), zap.Int("count", table.Len()), zap.Int("invalid", table.InvalidCount()))
	return table, nil
}

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

var selectPostcodes = `
select postcode, eastings::text as eastings, northings::text as northings
from %s`

type postcodeRow struct {
	Postcode  string         `db:"postcode"`
	Eastings  sql.NullString `db:"eastings"`
	Northings sql.NullString `db:"northings"`
}

// SQLSource reads the postcode table from postgres. Coordinates are fetched as text
// so they go through the same coercion as the csv.
type SQLSource struct {
	DSN       string
	TableName string

	log *zap.Logger
}

func NewSQLSource(dsn, tableName string, log *zap.Logger) *SQLSource {
	return &SQLSource{DSN: dsn, TableName: tableName, log: log}
}

func (s *SQLSource) Load(ctx context.Context) (*Table, error) {
	if !tableNameRegex.MatchString(s.TableName) {
		return nil, domain.NewErrorf(domain.ErrDataLoad, "invalid postcode table name %q", s.TableName)
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", s.DSN)
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrDataLoad, "connecting to postcode database")
	}
	defer db.Close()

	var rows []postcodeRow
	if err := db.SelectContext(ctx, &rows, fmt.Sprintf(selectPostcodes, s.TableName)); err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrDataLoad, "querying %s", s.TableName)
	}

	return NewTable(rowsToRecords(rows, s.log)), nil
}

func rowsToRecords(rows []postcodeRow, log *zap.Logger) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		eastings, errE := parseCoordinate(row.Eastings.String)
		northings, errN := parseCoordinate(row.Northings.String)

		r := Record{
			Postcode:  row.Postcode,
			Eastings:  eastings,
			Northings: northings,
			Valid:     errE == nil && errN == nil,
		}
		if !r.Valid {
			r.Err = domain.NewErrorf(domain.ErrInvalidCoordinate,
				"postcode %s has non numeric coordinate", row.Postcode)
			log.Debug("coordinate coerced to missing", zap.String("postcode", row.Postcode))
		}
		records = append(records, r)
	}
	return records
}
