//go:build wireinject

//go:generate wire
package di

import (
	"context"

	"github.com/google/wire"

	"github.com/thomhuang/MonumentsByPostcode/pkg/config"
	monumentHttp "github.com/thomhuang/MonumentsByPostcode/pkg/http"
	"github.com/thomhuang/MonumentsByPostcode/pkg/http/usecases"
)

var defaultSet = wire.NewSet(
	config.New,
	NewLogger,
	NewFetcher,
	NewMonumentSource,
	NewPostcodeSource,
	NewFinder,
	NewMapper,
	NewMonumentService,
)

var serverSet = wire.NewSet(
	defaultSet,
	NewMonumentAPIServer,
)

func InitializeMonumentService() (*usecases.MonumentService, func(), error) {
	panic(wire.Build(defaultSet))
}

func InitializeMonumentAPIServer(ctx context.Context) (*monumentHttp.Server, func(), error) {
	panic(wire.Build(serverSet))
}
