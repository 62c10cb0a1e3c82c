package monument

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

func readGeoJSON(r io.Reader, nameField string, log *zap.Logger, onProgress ProgressFunc) ([]Monument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	total := len(fc.Features)
	monuments := make([]Monument, 0, total)
	for i, f := range fc.Features {
		if onProgress != nil {
			onProgress(i+1, total)
		}

		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			log.Warn("skipping monument feature without polygon geometry",
				zap.Int("feature", i), zap.String("type", fmt.Sprintf("%T", f.Geometry)))
			continue
		}

		attrs := make(map[string]string, len(f.Properties))
		name, found := "", false
		for k, v := range f.Properties {
			attrs[k] = formatProperty(v)
			if strings.EqualFold(k, nameField) {
				name, found = attrs[k], true
			}
		}
		if !found {
			return nil, fmt.Errorf("field %q not found on feature %d", nameField, i)
		}

		monuments = append(monuments, Monument{
			Name:       name,
			Geometry:   f.Geometry,
			Attributes: attrs,
		})
	}

	return monuments, nil
}

func formatProperty(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
