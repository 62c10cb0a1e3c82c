package postcode

import (
	"strings"

	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
)

type Table struct {
	Records []Record
	byCode  map[string][]int
	invalid int
}

func NewTable(records []Record) *Table {
	t := &Table{
		Records: records,
		byCode:  make(map[string][]int, len(records)),
	}
	for i, r := range records {
		key := Normalize(r.Postcode)
		t.byCode[key] = append(t.byCode[key], i)
		if !r.Valid {
			t.invalid++
		}
	}
	return t
}

// Normalize is the key postcodes are compared on.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (t *Table) Len() int {
	return len(t.Records)
}

// InvalidCount is the number of rows whose coordinates could not be parsed.
func (t *Table) InvalidCount() int {
	return t.invalid
}

// Matches returns how many rows carry code, valid or not.
func (t *Table) Matches(code string) int {
	return len(t.byCode[Normalize(code)])
}

// Resolve returns the first row for code that has usable coordinates.
func (t *Table) Resolve(code string) (Record, error) {
	idxs := t.byCode[Normalize(code)]
	if len(idxs) == 0 {
		return Record{}, domain.NewErrorf(domain.ErrPostcodeNotFound, "postcode %q not found", code)
	}

	for _, i := range idxs {
		if t.Records[i].Valid {
			return t.Records[i], nil
		}
	}

	first := t.Records[idxs[0]]
	return Record{}, domain.WrapErrorf(first.Err, domain.ErrInvalidCoordinate,
		"postcode %q has no usable coordinates", code)
}
