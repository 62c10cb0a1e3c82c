package monument

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/crs"
)

func readShapefile(path, nameField string, log *zap.Logger, onProgress ProgressFunc) ([]Monument, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	fields := reader.Fields()
	fieldNames := make([]string, len(fields))
	nameIdx := -1
	for i, f := range fields {
		fieldNames[i] = f.String()
		if strings.EqualFold(fieldNames[i], nameField) {
			nameIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("field %q not found in %s", nameField, path)
	}

	total := reader.AttributeCount()
	monuments := make([]Monument, 0, total)
	read := 0

	for reader.Next() {
		n, shape := reader.Shape()
		read++
		if onProgress != nil {
			onProgress(read, total)
		}

		geom := shapeToGeometry(shape)
		if geom == nil {
			log.Warn("skipping monument record without polygon geometry",
				zap.Int("record", n), zap.String("type", fmt.Sprintf("%T", shape)))
			continue
		}

		attrs := make(map[string]string, len(fields))
		for k := range fields {
			attrs[fieldNames[k]] = trimAttribute(reader.ReadAttribute(n, k))
		}

		monuments = append(monuments, Monument{
			Name:       attrs[fieldNames[nameIdx]],
			Geometry:   geom,
			Attributes: attrs,
		})
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	return monuments, nil
}

// trimAttribute strips the space and NUL padding of fixed width dbf fields.
func trimAttribute(v string) string {
	return strings.Trim(v, "\x00 ")
}

func shapeToGeometry(shape shp.Shape) orb.Geometry {
	switch s := shape.(type) {
	case *shp.Polygon:
		return polygonFromParts(s.Parts, s.Points)
	case *shp.PolygonZ:
		return polygonFromParts(s.Parts, s.Points)
	case *shp.PolygonM:
		return polygonFromParts(s.Parts, s.Points)
	}
	return nil
}

// polygonFromParts groups shapefile rings into polygons. Outer rings are clockwise,
// holes counter-clockwise and belong to the outer ring that contains them.
func polygonFromParts(parts []int32, points []shp.Point) orb.Geometry {
	var (
		outers []orb.Polygon
		holes  []orb.Ring
	)

	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		if int(start) >= end {
			continue
		}

		ring := make(orb.Ring, 0, end-int(start))
		for _, p := range points[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		if len(ring) < 3 {
			continue
		}

		if ring.Orientation() == orb.CCW {
			holes = append(holes, ring)
		} else {
			outers = append(outers, orb.Polygon{ring})
		}
	}

	// some writers ignore the winding rule, treat everything as shells then
	if len(outers) == 0 {
		for _, h := range holes {
			outers = append(outers, orb.Polygon{h})
		}
		holes = nil
	}

	for _, h := range holes {
		placed := false
		for i := range outers {
			if planar.RingContains(outers[i][0], h[0]) {
				outers[i] = append(outers[i], h)
				placed = true
				break
			}
		}
		if !placed {
			outers = append(outers, orb.Polygon{h})
		}
	}

	switch len(outers) {
	case 0:
		return nil
	case 1:
		return outers[0]
	default:
		return orb.MultiPolygon(outers)
	}
}

// prjEPSG reads the .prj next to a shapefile, if any.
func prjEPSG(shpPath string) (crs.EPSG, bool) {
	prjPath := strings.TrimSuffix(shpPath, ".shp") + ".prj"
	if strings.HasSuffix(shpPath, ".SHP") {
		prjPath = strings.TrimSuffix(shpPath, ".SHP") + ".PRJ"
	}

	b, err := os.ReadFile(prjPath)
	if err != nil {
		return 0, false
	}
	return crs.DetectPRJ(string(b))
}
