package monument

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/crs"
	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
	"github.com/thomhuang/MonumentsByPostcode/pkg/fetch"
)

// FileSource reads monuments from a shapefile or a GeoJSON file on every Load.
type FileSource struct {
	Path      string
	NameField string
	// SourceEPSG overrides the crs detection, 0 means detect.
	SourceEPSG crs.EPSG
	OnProgress ProgressFunc

	fetcher *fetch.Fetcher
	log     *zap.Logger
}

func NewFileSource(path, nameField string, sourceEPSG crs.EPSG, fetcher *fetch.Fetcher, log *zap.Logger) *FileSource {
	if nameField == "" {
		nameField = "Name"
	}
	return &FileSource{
		Path:       path,
		NameField:  nameField,
		SourceEPSG: sourceEPSG,
		fetcher:    fetcher,
		log:        log,
	}
}

func (s *FileSource) Load(ctx context.Context) ([]Monument, error) {
	var (
		monuments []Monument
		from      crs.EPSG
		err       error
	)

	ext := strings.ToLower(filepath.Ext(s.Path))
	switch ext {
	case ".shp":
		if fetch.IsRemote(s.Path) {
			return nil, domain.NewErrorf(domain.ErrDataLoad, "shapefiles must be local, got %s", s.Path)
		}
		monuments, err = readShapefile(s.Path, s.NameField, s.log, s.OnProgress)
		from = crs.BritishNationalGrid
		if detected, ok := prjEPSG(s.Path); ok {
			from = detected
		}
	case ".geojson", ".json":
		rc, openErr := s.fetcher.Open(ctx, s.Path, "", ext)
		if openErr != nil {
			return nil, domain.WrapErrorf(openErr, domain.ErrDataLoad, "opening monuments %s", s.Path)
		}
		defer rc.Close()
		monuments, err = readGeoJSON(rc, s.NameField, s.log, s.OnProgress)
		from = crs.WGS84
	default:
		return nil, domain.NewErrorf(domain.ErrDataLoad, "unsupported monument file type %q", ext)
	}
	if err != nil {
		return nil, domain.WrapErrorf(err, domain.ErrDataLoad, "reading monuments %s", s.Path)
	}

	if s.SourceEPSG != 0 {
		from = s.SourceEPSG
	}

	for i := range monuments {
		monuments[i].Geometry, err = crs.Reproject(monuments[i].Geometry, from, crs.BritishNationalGrid)
		if err != nil {
			return nil, domain.WrapErrorf(err, domain.ErrDataLoad, "reprojecting monuments from %s", from)
		}
	}

	s.log.Debug("monuments loaded",
		zap.String("path", s.Path), zap.Int("count", len(monuments)), zap.Stringer("crs", from))
	return monuments, nil
}
