package finder

import (
	"cmp"
	"context"
	"time"

	"github.com/paulmach/orb"
	"github.com/umahmood/haversine"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/thomhuang/MonumentsByPostcode/pkg/crs"
	"github.com/thomhuang/MonumentsByPostcode/pkg/monument"
	"github.com/thomhuang/MonumentsByPostcode/pkg/postcode"
)

const DefaultLimit = 5

// Result is one row of the nearest monuments table.
type Result struct {
	Index      int               `json:"index"`
	Name       string            `json:"name"`
	Distance   float64           `json:"distance"`
	CentroidKm float64           `json:"centroid_km"`
	Geometry   orb.Geometry      `json:"-"`
	Centroid   orb.Point         `json:"centroid"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Nearest holds the resolved postcode and the sorted result rows.
type Nearest struct {
	Postcode string    `json:"postcode"`
	Origin   orb.Point `json:"origin"`
	Rows     []Result  `json:"rows"`
}

type Finder struct {
	log       *zap.Logger
	monuments monument.Source
	postcodes postcode.Source
	limit     int
}

func New(log *zap.Logger, monuments monument.Source, postcodes postcode.Source, limit int) *Finder {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Finder{
		log:       log,
		monuments: monuments,
		postcodes: postcodes,
		limit:     limit,
	}
}

// FindNearest loads both datasets, resolves code to a single point and returns the
// monuments closest to it, nearest first.
func (f *Finder) FindNearest(ctx context.Context, code string) (*Nearest, error) {
	start := time.Now()

	monuments, err := f.monuments.Load(ctx)
	if err != nil {
		return nil, err
	}

	table, err := f.postcodes.Load(ctx)
	if err != nil {
		return nil, err
	}

	record, err := table.Resolve(code)
	if err != nil {
		return nil, err
	}
	if n := table.Matches(code); n > 1 {
		f.log.Warn("postcode matches more than one row, using the first with coordinates",
			zap.String("postcode", code), zap.Int("matches", n))
	}

	origin := record.Point()
	rows := make([]Result, 0, len(monuments))
	for _, m := range monuments {
		rows = append(rows, Result{
			Name:       m.Name,
			Distance:   monument.DistanceTo(m.Geometry, origin),
			Geometry:   m.Geometry,
			Attributes: m.Attributes,
		})
	}

	slices.SortStableFunc(rows, func(a, b Result) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	if len(rows) > f.limit {
		rows = rows[:f.limit]
	}

	originLon, originLat := crs.BNGToWGS84(origin.X(), origin.Y())
	for i := range rows {
		rows[i].Index = i
		rows[i].Centroid = monument.Centroid(rows[i].Geometry)

		lon, lat := crs.BNGToWGS84(rows[i].Centroid.X(), rows[i].Centroid.Y())
		_, km := haversine.Distance(
			haversine.Coord{Lat: originLat, Lon: originLon},
			haversine.Coord{Lat: lat, Lon: lon},
		)
		rows[i].CentroidKm = km
	}

	f.log.Info("nearest monuments",
		zap.String("postcode", record.Postcode),
		zap.Int("monuments", len(monuments)),
		zap.Int("rows", len(rows)),
		zap.Duration("took", time.Since(start)))

	return &Nearest{
		Postcode: record.Postcode,
		Origin:   origin,
		Rows:     rows,
	}, nil
}
