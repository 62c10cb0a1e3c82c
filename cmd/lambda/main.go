package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/thomhuang/MonumentsByPostcode/pkg/di"
	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	"github.com/thomhuang/MonumentsByPostcode/pkg/mapper"
)

type monumentService interface {
	Nearest(ctx context.Context, postcode string) (*finder.Nearest, error)
	Map(ctx context.Context, postcode string) (*mapper.Map, error)
}

type app struct {
	svc monumentService
}

// handler answers GET /monuments/{postcode}. ?format=geojson returns the map markers instead of the table.
func (a *app) handler(ctx context.Context, req events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	postcode, ok := req.PathParameters["postcode"]
	postcode = strings.TrimSpace(postcode)
	if !ok || len(postcode) == 0 {
		return makeE(400, "E_INVALID_REQUEST"), nil
	}
	if len(postcode) > 8 {
		return makeE(400, "E_INVALID_POSTCODE_FORMAT"), nil
	}

	if req.QueryStringParameters["format"] == "geojson" {
		m, err := a.svc.Map(ctx, postcode)
		if err != nil {
			return errorResponse(postcode, err), nil
		}
		b, err := m.GeoJSON().MarshalJSON()
		if err != nil {
			return makeE(500, "E_ENCODE"), nil
		}
		return &events.APIGatewayProxyResponse{
			StatusCode: 200,
			Headers:    map[string]string{"Content-Type": "application/geo+json"},
			Body:       string(b),
		}, nil
	}

	nearest, err := a.svc.Nearest(ctx, postcode)
	if err != nil {
		return errorResponse(postcode, err), nil
	}

	b, err := json.Marshal(nearest)
	if err != nil {
		return makeE(500, "E_ENCODE"), nil
	}
	return &events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}, nil
}

func errorResponse(postcode string, err error) *events.APIGatewayProxyResponse {
	switch domain.CodeOf(err) {
	case domain.ErrPostcodeNotFound:
		return makeE(http.StatusNotFound, "E_POSTCODE_NOT_FOUND")
	case domain.ErrInvalidCoordinate:
		return makeE(http.StatusUnprocessableEntity, "E_INVALID_COORDINATE")
	default:
		fmt.Printf("lookup failed for postcode(%s): %s\n", postcode, err)
		return makeE(http.StatusInternalServerError, "E_INTERNAL")
	}
}

func makeE(statusCode int, msg string) *events.APIGatewayProxyResponse {
	return &events.APIGatewayProxyResponse{
		Headers:    map[string]string{"Content-Type": "application/json"},
		StatusCode: statusCode,
		Body:       fmt.Sprintf(`{ "error": "%s" }`, msg),
	}
}

func main() {
	svc, cleanup, err := di.InitializeMonumentService()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	a := &app{svc: svc}
	lambda.Start(a.handler)
}
