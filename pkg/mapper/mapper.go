package mapper

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/crs"
	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	"github.com/thomhuang/MonumentsByPostcode/pkg/postcode"
)

const (
	DefaultLat  = 52.4776
	DefaultLon  = 1.8944
	DefaultZoom = 6

	markerColor = "red"
	markerIcon  = "info-sign"
)

type NearestFinder interface {
	FindNearest(ctx context.Context, code string) (*finder.Nearest, error)
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Popup string  `json:"popup"`
	Color string  `json:"color"`
	Icon  string  `json:"icon"`
}

type Bounds struct {
	SouthWest LatLon `json:"south_west"`
	NorthEast LatLon `json:"north_east"`
}

// Map is an in-memory web map, built fresh on every RenderMap call.
type Map struct {
	ID       string   `json:"id"`
	Postcode string   `json:"postcode"`
	Center   LatLon   `json:"center"`
	Zoom     int      `json:"zoom"`
	Markers  []Marker `json:"markers"`
	Bounds   *Bounds  `json:"bounds,omitempty"`
}

type Options struct {
	Center LatLon
	Zoom   int
	// Postcodes, when set, annotates each popup with the postcode nearest the monument.
	Postcodes postcode.Source
}

type Mapper struct {
	finder NearestFinder
	log    *zap.Logger
	opts   Options
}

func New(f NearestFinder, log *zap.Logger, opts Options) *Mapper {
	if opts.Center == (LatLon{}) {
		opts.Center = LatLon{Lat: DefaultLat, Lon: DefaultLon}
	}
	if opts.Zoom == 0 {
		opts.Zoom = DefaultZoom
	}
	return &Mapper{finder: f, log: log, opts: opts}
}

// RenderMap places one marker per nearest monument at its centroid.
func (m *Mapper) RenderMap(ctx context.Context, code string) (*Map, error) {
	nearest, err := m.finder.FindNearest(ctx, code)
	if err != nil {
		return nil, err
	}

	var index *postcode.RTree
	if m.opts.Postcodes != nil {
		table, err := m.opts.Postcodes.Load(ctx)
		if err != nil {
			return nil, err
		}
		index = postcode.NewIndex(table)
	}

	out := &Map{
		ID:       newMapID(),
		Postcode: nearest.Postcode,
		Center:   m.opts.Center,
		Zoom:     m.opts.Zoom,
		Markers:  make([]Marker, 0, len(nearest.Rows)),
	}

	rect := s2.EmptyRect()
	for _, row := range nearest.Rows {
		lon, lat := crs.BNGToWGS84(row.Centroid.X(), row.Centroid.Y())

		popup := row.Name
		if index != nil {
			if district, ok := index.Nearest(row.Centroid); ok {
				popup = fmt.Sprintf("%s (nearest postcode %s)", row.Name, district)
			}
		}

		out.Markers = append(out.Markers, Marker{
			Lat:   lat,
			Lon:   lon,
			Popup: popup,
			Color: markerColor,
			Icon:  markerIcon,
		})
		rect = rect.AddPoint(s2.LatLngFromDegrees(lat, lon))
	}

	if !rect.IsEmpty() {
		out.Bounds = &Bounds{
			SouthWest: LatLon{Lat: rect.Lo().Lat.Degrees(), Lon: rect.Lo().Lng.Degrees()},
			NorthEast: LatLon{Lat: rect.Hi().Lat.Degrees(), Lon: rect.Hi().Lng.Degrees()},
		}
	}

	m.log.Debug("map rendered", zap.String("id", out.ID), zap.Int("markers", len(out.Markers)))
	return out, nil
}

func newMapID() string {
	id := uuid.New()
	return "map_" + hex.EncodeToString(id[:])
}
