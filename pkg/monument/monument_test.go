package monument

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
	"github.com/thomhuang/MonumentsByPostcode/pkg/fetch"
)

const bngPRJ = `PROJCS["British_National_Grid",GEOGCS["GCS_OSGB_1936",DATUM["D_OSGB_1936",SPHEROID["Airy_1830",6377563.396,299.3249646]]]]`

// square returns a clockwise ring, the shapefile winding for outer rings.
func square(x, y, size float64) []shp.Point {
	return []shp.Point{
		{X: x, Y: y}, {X: x, Y: y + size}, {X: x + size, Y: y + size}, {X: x + size, Y: y}, {X: x, Y: y},
	}
}

func hole(x, y, size float64) []shp.Point {
	return []shp.Point{
		{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}, {X: x, Y: y},
	}
}

func writeShapefile(t *testing.T, dir string, names []string, parts [][][]shp.Point) string {
	t.Helper()

	p := filepath.Join(dir, "Monuments2.shp")
	w, err := shp.Create(p, shp.POLYGON)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("Name", 80),
		shp.StringField("ListEntry", 10),
	}))
	for i := range names {
		poly := shp.Polygon(*shp.NewPolyLine(parts[i]))
		n := w.Write(&poly)
		require.NoError(t, w.WriteAttribute(int(n), 0, names[i]))
		require.NoError(t, w.WriteAttribute(int(n), 1, "10"+names[i][:1]))
	}
	w.Close()

	// the writer drops the dot before the dbf extension
	base := strings.TrimSuffix(p, ".shp")
	if _, err := os.Stat(base + "dbf"); err == nil {
		require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	}
	return p
}

func TestPolygonFromParts(t *testing.T) {
	t.Run("outer ring with hole", func(t *testing.T) {
		outer := square(0, 0, 10)
		inner := hole(2, 2, 6)
		points := append(append([]shp.Point{}, outer...), inner...)

		g := polygonFromParts([]int32{0, int32(len(outer))}, points)
		poly, ok := g.(orb.Polygon)
		require.True(t, ok)
		assert.Len(t, poly, 2)
	})

	t.Run("two shells", func(t *testing.T) {
		a := square(0, 0, 10)
		b := square(100, 100, 10)
		points := append(append([]shp.Point{}, a...), b...)

		g := polygonFromParts([]int32{0, int32(len(a))}, points)
		mp, ok := g.(orb.MultiPolygon)
		require.True(t, ok)
		assert.Len(t, mp, 2)
	})

	t.Run("counter clockwise only", func(t *testing.T) {
		g := polygonFromParts([]int32{0}, hole(0, 0, 10))
		_, ok := g.(orb.Polygon)
		assert.True(t, ok)
	})
}

func TestDistanceTo(t *testing.T) {
	poly := orb.Polygon{orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}}

	t.Run("inside", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceTo(poly, orb.Point{5, 5}))
	})

	t.Run("outside", func(t *testing.T) {
		assert.InDelta(t, 5.0, DistanceTo(poly, orb.Point{15, 5}), 1e-9)
		assert.InDelta(t, 5.0, DistanceTo(poly, orb.Point{13, 14}), 1e-9)
	})

	t.Run("inside a hole", func(t *testing.T) {
		withHole := orb.Polygon{
			poly[0],
			orb.Ring{{2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}},
		}
		assert.InDelta(t, 3.0, DistanceTo(withHole, orb.Point{5, 5}), 1e-9)
	})

	t.Run("multipolygon", func(t *testing.T) {
		mp := orb.MultiPolygon{poly, {orb.Ring{{20, 0}, {20, 10}, {30, 10}, {30, 0}, {20, 0}}}}
		assert.Equal(t, 0.0, DistanceTo(mp, orb.Point{25, 5}))
		assert.InDelta(t, 2.0, DistanceTo(mp, orb.Point{18, 5}), 1e-9)
	})
}

func TestCentroid(t *testing.T) {
	poly := orb.Polygon{orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}}
	c := Centroid(poly)
	assert.InDelta(t, 5.0, c.X(), 1e-9)
	assert.InDelta(t, 5.0, c.Y(), 1e-9)
}

func TestTrimAttribute(t *testing.T) {
	assert.Equal(t, "Vindolanda", trimAttribute("Vindolanda\x00\x00\x00"))
	assert.Equal(t, "Vindolanda", trimAttribute("  Vindolanda  "))
	assert.Equal(t, "Vindolanda", trimAttribute("Vindolanda \x00 \x00"))
	assert.Equal(t, "", trimAttribute("\x00\x00"))
}

func TestFileSourceShapefile(t *testing.T) {
	dir := t.TempDir()
	p := writeShapefile(t, dir,
		[]string{"Hadrian's Wall", "Vindolanda"},
		[][][]shp.Point{
			{square(385000, 564000, 100)},
			{square(377000, 566000, 200), hole(377050, 566050, 50)},
		})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Monuments2.prj"), []byte(bngPRJ), 0644))

	var progress []int
	src := NewFileSource(p, "Name", 0, fetch.New(time.Second), zap.NewNop())
	src.OnProgress = func(current, total int) {
		progress = append(progress, current)
		assert.Equal(t, 2, total)
	}

	monuments, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, monuments, 2)

	assert.Equal(t, "Hadrian's Wall", monuments[0].Name)
	assert.Equal(t, "Vindolanda", monuments[1].Name)
	assert.Equal(t, "10H", monuments[0].Attributes["ListEntry"])
	assert.Equal(t, "10V", monuments[1].Attributes["ListEntry"])
	assert.Equal(t, []int{1, 2}, progress)

	withHole, ok := monuments[1].Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, withHole, 2)
	// already british national grid, coordinates untouched
	assert.Equal(t, 377000.0, withHole[0][0].X())
}

func TestFileSourceShapefileWGS84(t *testing.T) {
	dir := t.TempDir()
	p := writeShapefile(t, dir,
		[]string{"Lindisfarne Priory"},
		[][][]shp.Point{{square(-1.80, 55.66, 0.01)}})

	src := NewFileSource(p, "Name", 4326, fetch.New(time.Second), zap.NewNop())
	monuments, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, monuments, 1)

	c := Centroid(monuments[0].Geometry)
	assert.InDelta(t, 412500, c.X(), 2000)
	assert.InDelta(t, 641800, c.Y(), 2000)
}

func TestFileSourceGeoJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "monuments.geojson")
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"Name":"Stonehenge","ListEntry":1009132},
		 "geometry":{"type":"Polygon","coordinates":[[[-1.83,51.17],[-1.82,51.17],[-1.82,51.18],[-1.83,51.18],[-1.83,51.17]]]}},
		{"type":"Feature","properties":{"Name":"A marker"},
		 "geometry":{"type":"Point","coordinates":[-1.8,51.1]}}
	]}`
	require.NoError(t, os.WriteFile(p, []byte(doc), 0644))

	src := NewFileSource(p, "name", 0, fetch.New(time.Second), zap.NewNop())
	monuments, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, monuments, 1)

	assert.Equal(t, "Stonehenge", monuments[0].Name)
	assert.Equal(t, "1009132", monuments[0].Attributes["ListEntry"])
	c := Centroid(monuments[0].Geometry)
	assert.InDelta(t, 412200, c.X(), 2000)
	assert.InDelta(t, 142400, c.Y(), 2000)
}

func TestFileSourceErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		src := NewFileSource(filepath.Join(t.TempDir(), "Monuments2.shp"), "Name", 0, fetch.New(time.Second), zap.NewNop())
		_, err := src.Load(context.Background())
		assert.True(t, errors.Is(err, domain.ErrDataLoad))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		src := NewFileSource("monuments.kml", "Name", 0, fetch.New(time.Second), zap.NewNop())
		_, err := src.Load(context.Background())
		assert.True(t, errors.Is(err, domain.ErrDataLoad))
	})

	t.Run("geojson feature without name", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "monuments.geojson")
		doc := `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"ListEntry":1009132},
			 "geometry":{"type":"Polygon","coordinates":[[[-1.83,51.17],[-1.82,51.17],[-1.82,51.18],[-1.83,51.18],[-1.83,51.17]]]}}
		]}`
		require.NoError(t, os.WriteFile(p, []byte(doc), 0644))

		src := NewFileSource(p, "Name", 0, fetch.New(time.Second), zap.NewNop())
		_, err := src.Load(context.Background())
		assert.True(t, errors.Is(err, domain.ErrDataLoad))
	})

	t.Run("missing name field", func(t *testing.T) {
		p := writeShapefile(t, t.TempDir(), []string{"Vindolanda"}, [][][]shp.Point{{square(0, 0, 1)}})
		src := NewFileSource(p, "SCHEDNAME", 0, fetch.New(time.Second), zap.NewNop())
		_, err := src.Load(context.Background())
		assert.True(t, errors.Is(err, domain.ErrDataLoad))
	})
}
