package di

import (
	"context"

	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/config"
	"github.com/thomhuang/MonumentsByPostcode/pkg/crs"
	"github.com/thomhuang/MonumentsByPostcode/pkg/fetch"
	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	monumentHttp "github.com/thomhuang/MonumentsByPostcode/pkg/http"
	"github.com/thomhuang/MonumentsByPostcode/pkg/http/http-router/controllers"
	http_server "github.com/thomhuang/MonumentsByPostcode/pkg/http/server"
	"github.com/thomhuang/MonumentsByPostcode/pkg/http/usecases"
	"github.com/thomhuang/MonumentsByPostcode/pkg/logger"
	"github.com/thomhuang/MonumentsByPostcode/pkg/mapper"
	"github.com/thomhuang/MonumentsByPostcode/pkg/monument"
	"github.com/thomhuang/MonumentsByPostcode/pkg/postcode"
)

func NewLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	lcfg := cfg.Logger()
	if err := lcfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(lcfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = log.Sync()
	}

	return log, cleanup, nil
}

func NewFetcher(cfg *config.Config) *fetch.Fetcher {
	return fetch.New(cfg.FetchTimeout)
}

func NewMonumentSource(cfg *config.Config, fetcher *fetch.Fetcher, log *zap.Logger) *monument.FileSource {
	return monument.NewFileSource(cfg.MonumentsPath, cfg.MonumentsNameField, crs.EPSG(cfg.MonumentsEPSG), fetcher, log)
}

// NewPostcodeSource reads from postgres when a DSN is configured, otherwise from the csv.
func NewPostcodeSource(cfg *config.Config, fetcher *fetch.Fetcher, log *zap.Logger) postcode.Source {
	if cfg.PostcodesDSN != "" {
		return postcode.NewSQLSource(cfg.PostcodesDSN, cfg.PostcodesTable, log)
	}
	return postcode.NewFileSource(cfg.PostcodesPath, cfg.PostcodesEntry, fetcher, log)
}

func NewFinder(cfg *config.Config, log *zap.Logger, monuments *monument.FileSource, postcodes postcode.Source) *finder.Finder {
	return finder.New(log, monuments, postcodes, cfg.FinderLimit)
}

func NewMapper(cfg *config.Config, log *zap.Logger, f *finder.Finder, postcodes postcode.Source) *mapper.Mapper {
	opts := mapper.Options{
		Center: mapper.LatLon{Lat: cfg.MapCenterLat, Lon: cfg.MapCenterLon},
		Zoom:   cfg.MapZoom,
	}
	if cfg.AnnotatePostcode {
		opts.Postcodes = postcodes
	}
	return mapper.New(f, log, opts)
}

func NewMonumentService(log *zap.Logger, f *finder.Finder, m *mapper.Mapper) *usecases.MonumentService {
	return usecases.New(log, f, m)
}

func NewMonumentAPIServer(ctx context.Context, cfg *config.Config, log *zap.Logger,
	monumentService *usecases.MonumentService) (*monumentHttp.Server, error) {
	api := monumentHttp.NewServer(log)

	var svc controllers.MonumentService = monumentService
	apiService, err := api.Use(
		ctx, log, http_server.Config{Port: cfg.APIPort, Timeout: cfg.APITimeout}, svc,
	)
	if err != nil {
		return nil, err
	}

	return apiService, nil
}
