package controllers

import (
	"context"

	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	"github.com/thomhuang/MonumentsByPostcode/pkg/mapper"
)

type MonumentService interface {
	Nearest(ctx context.Context, postcode string) (*finder.Nearest, error)
	Map(ctx context.Context, postcode string) (*mapper.Map, error)
}

type envelope map[string]interface{}
