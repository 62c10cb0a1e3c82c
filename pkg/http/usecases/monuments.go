package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	"github.com/thomhuang/MonumentsByPostcode/pkg/mapper"
)

type NearestFinder interface {
	FindNearest(ctx context.Context, code string) (*finder.Nearest, error)
}

type MapRenderer interface {
	RenderMap(ctx context.Context, code string) (*mapper.Map, error)
}

type MonumentService struct {
	log    *zap.Logger
	finder NearestFinder
	mapper MapRenderer
}

func New(log *zap.Logger, finder NearestFinder, mapper MapRenderer) *MonumentService {
	return &MonumentService{
		log:    log,
		finder: finder,
		mapper: mapper,
	}
}

func (s *MonumentService) Nearest(ctx context.Context, postcode string) (*finder.Nearest, error) {
	return s.finder.FindNearest(ctx, postcode)
}

func (s *MonumentService) Map(ctx context.Context, postcode string) (*mapper.Map, error) {
	return s.mapper.RenderMap(ctx, postcode)
}
