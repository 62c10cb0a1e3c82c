package postcode

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
)

const (
	postcodeColumn  = "postcode"
	eastingsColumn  = "eastings"
	northingsColumn = "northings"
)

func processPostcodeFile(reader io.Reader, log *zap.Logger) ([]Record, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read postcode header: %w", err)
	}

	cols := map[string]int{postcodeColumn: -1, eastingsColumn: -1, northingsColumn: -1}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if idx, ok := cols[name]; ok && idx < 0 {
			cols[name] = i
		}
	}
	for name, idx := range cols {
		if idx < 0 {
			return nil, fmt.Errorf("postcode file has no %q column", name)
		}
	}

	var records []Record
	line := 1
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Warn("could not read postcode record", zap.Int("line", line), zap.Error(err))
			continue
		}

		code := record[cols[postcodeColumn]]
		eastings, errE := parseCoordinate(record[cols[eastingsColumn]])
		northings, errN := parseCoordinate(record[cols[northingsColumn]])

		r := Record{
			Postcode:  code,
			Eastings:  eastings,
			Northings: northings,
			Valid:     errE == nil && errN == nil,
		}
		if !r.Valid {
			bad := record[cols[eastingsColumn]]
			if errE == nil {
				bad = record[cols[northingsColumn]]
			}
			r.Err = domain.NewErrorf(domain.ErrInvalidCoordinate,
				"postcode %s has non numeric coordinate %q", code, bad)
			log.Debug("coordinate coerced to missing",
				zap.String("postcode", code), zap.Int("line", line), zap.String("value", bad))
		}
		records = append(records, r)
	}

	return records, nil
}

// parseCoordinate coerces a csv cell to a number, anything unparseable becomes missing.
func parseCoordinate(val string) (float64, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return math.NaN(), fmt.Errorf("empty")
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return math.NaN(), err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return math.NaN(), fmt.Errorf("not finite")
	}
	return f, nil
}
