package postcode

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// tolerance of the rect stored for each postcode, in metres
const tol = 0.5

// NewIndex builds an r-tree over the valid rows of table.
func NewIndex(table *Table) *RTree {
	// dim = 2D eastings/northings
	// 25 min entries, 50 max entries
	rt := &RTree{
		Tree: rtreego.NewTree(2, 25, 50),
	}
	for _, r := range table.Records {
		if !r.Valid {
			continue
		}
		rt.create(r)
	}
	return rt
}

// Create Item within RTree for a given Record
func (rt *RTree) create(r Record) {
	point := rtreego.Point{r.Eastings, r.Northings}
	item := &PostcodeItem{
		Rect:      point.ToRect(tol),
		Postcode:  r.Postcode,
		Eastings:  r.Eastings,
		Northings: r.Northings,
	}
	rt.Tree.Insert(item)
}

func (rt *RTree) Size() int {
	return rt.Tree.Size()
}

// Nearest returns the postcode closest to p, p in British National Grid.
func (rt *RTree) Nearest(p orb.Point) (string, bool) {
	nearest := rt.Tree.NearestNeighbor(rtreego.Point{p.X(), p.Y()})
	if nearest == nil {
		return "", false
	}
	// cast from `Spatial` to our struct
	item := nearest.(*PostcodeItem)
	return item.Postcode, true
}

func (p *PostcodeItem) Bounds() rtreego.Rect {
	return p.Rect
}
