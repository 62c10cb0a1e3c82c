package crs

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

type EPSG int

const (
	// WGS84 geographic longitude/latitude, used for web maps and GeoJSON.
	WGS84 EPSG = 4326
	// BritishNationalGrid is OSGB36 / British National Grid, planar metres.
	BritishNationalGrid EPSG = 27700
)

func (e EPSG) String() string {
	return fmt.Sprintf("EPSG:%d", int(e))
}

func (e EPSG) Supported() bool {
	return e == WGS84 || e == BritishNationalGrid
}

// ToBNG is an orb.Projection from WGS84 lon/lat to British National Grid.
func ToBNG(p orb.Point) orb.Point {
	easting, northing := WGS84ToBNG(p.X(), p.Y())
	return orb.Point{easting, northing}
}

// ToWGS84 is an orb.Projection from British National Grid to WGS84 lon/lat.
func ToWGS84(p orb.Point) orb.Point {
	lon, lat := BNGToWGS84(p.X(), p.Y())
	return orb.Point{lon, lat}
}

// Transformer returns the projection that maps points in from into to.
func Transformer(from, to EPSG) (orb.Projection, error) {
	if !from.Supported() {
		return nil, fmt.Errorf("unsupported source crs %s", from)
	}
	if !to.Supported() {
		return nil, fmt.Errorf("unsupported target crs %s", to)
	}

	switch {
	case from == to:
		return func(p orb.Point) orb.Point { return p }, nil
	case from == WGS84:
		return ToBNG, nil
	default:
		return ToWGS84, nil
	}
}

// Reproject returns a copy of g expressed in the target crs. g itself is left untouched.
func Reproject(g orb.Geometry, from, to EPSG) (orb.Geometry, error) {
	proj, err := Transformer(from, to)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	if from == to {
		return orb.Clone(g), nil
	}
	return project.Geometry(orb.Clone(g), proj), nil
}

// DetectPRJ guesses the EPSG code from the WKT found in a shapefile .prj sidecar.
func DetectPRJ(wkt string) (EPSG, bool) {
	s := strings.ToUpper(wkt)
	switch {
	case strings.Contains(s, "BRITISH_NATIONAL_GRID"),
		strings.Contains(s, "BRITISH NATIONAL GRID"),
		strings.Contains(s, "OSGB") && strings.HasPrefix(strings.TrimSpace(s), "PROJCS"):
		return BritishNationalGrid, true
	case strings.HasPrefix(strings.TrimSpace(s), "GEOGCS") && strings.Contains(s, "WGS"):
		return WGS84, true
	}
	return 0, false
}
