package monument

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Monument is one scheduled monument polygon. Geometry is always British National Grid.
type Monument struct {
	Name       string
	Geometry   orb.Geometry
	Attributes map[string]string
}

type Source interface {
	Load(ctx context.Context) ([]Monument, error)
}

// ProgressFunc is called while records are read, total is 0 when unknown.
type ProgressFunc func(current, total int)

// DistanceTo is the planar distance between g and p, 0 when p lies inside a polygon.
func DistanceTo(g orb.Geometry, p orb.Point) float64 {
	switch g := g.(type) {
	case orb.Polygon:
		if planar.PolygonContains(g, p) {
			return 0
		}
	case orb.MultiPolygon:
		if planar.MultiPolygonContains(g, p) {
			return 0
		}
	}
	return planar.DistanceFrom(g, p)
}

// Centroid is the area weighted planar centroid of g.
func Centroid(g orb.Geometry) orb.Point {
	c, _ := planar.CentroidArea(g)
	return c
}
