package http

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	http_router "github.com/thomhuang/MonumentsByPostcode/pkg/http/http-router"
	"github.com/thomhuang/MonumentsByPostcode/pkg/http/http-router/controllers"
	http_server "github.com/thomhuang/MonumentsByPostcode/pkg/http/server"
)

type Server struct {
	Log *zap.Logger

	g *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the api in the background, Wait blocks until it stops.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,
	config http_server.Config,

	monumentService controllers.MonumentService,

) (*Server, error) {
	server := http_router.NewAPI(log)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(
			ctx, config, monumentService,
		)
	})

	s.g = g
	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}
