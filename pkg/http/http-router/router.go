package http_router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/thomhuang/MonumentsByPostcode/docs"
	"github.com/thomhuang/MonumentsByPostcode/pkg/http/http-router/controllers"
	router_helper "github.com/thomhuang/MonumentsByPostcode/pkg/http/http-router/router-helper"
	http_server "github.com/thomhuang/MonumentsByPostcode/pkg/http/server"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler builds the full middleware chain around the api routes.
func (api *API) Handler(monumentService controllers.MonumentService, reg *prometheus.Registry) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	group := router_helper.NewRouteGroup(router, "/api")

	monumentRoutes := controllers.New(monumentService, api.log)
	monumentRoutes.Routes(group)

	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.Handler(http.MethodGet, "/swagger/*any", httpSwagger.WrapHandler)

	m := NewMetrics(reg)

	return alice.New(corsHandler.Handler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), PromeHttpMiddleware(m, routeLabel(router))).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	monumentService controllers.MonumentService,
) error {
	api.log.Info("Run httprouter API")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := http_server.New(ctx, api.Handler(monumentService, reg), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
