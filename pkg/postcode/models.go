package postcode

import (
	"context"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

type Source interface {
	Load(ctx context.Context) (*Table, error)
}

// Record is one row of the postcode table. Rows whose eastings or northings
// did not parse are kept with Valid false and never resolve.
type Record struct {
	Postcode  string
	Eastings  float64
	Northings float64
	Valid     bool
	Err       error
}

// Point is the record's location in British National Grid.
func (r Record) Point() orb.Point {
	return orb.Point{r.Eastings, r.Northings}
}

type RTree struct {
	Tree *rtreego.Rtree
}

type PostcodeItem struct {
	Rect      rtreego.Rect
	Postcode  string
	Eastings  float64
	Northings float64
}
