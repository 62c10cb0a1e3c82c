package main

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	"github.com/thomhuang/MonumentsByPostcode/pkg/mapper"
)

type fakeService struct {
	err      error
	distance float64
}

func (s *fakeService) Nearest(ctx context.Context, postcode string) (*finder.Nearest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &finder.Nearest{
		Postcode: postcode,
		Origin:   orb.Point{385000, 564000},
		Rows:     []finder.Result{{Index: 0, Name: "Hadrian's Wall", Distance: 120 + s.distance}},
	}, nil
}

func (s *fakeService) Map(ctx context.Context, postcode string) (*mapper.Map, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &mapper.Map{
		Postcode: postcode,
		Markers:  []mapper.Marker{{Lat: 54.99, Lon: -2.36, Popup: "Hadrian's Wall"}},
	}, nil
}

func request(postcode, format string) events.APIGatewayProxyRequest {
	req := events.APIGatewayProxyRequest{
		PathParameters: map[string]string{"postcode": postcode},
	}
	if format != "" {
		req.QueryStringParameters = map[string]string{"format": format}
	}
	return req
}

func TestHandler(t *testing.T) {
	a := &app{svc: &fakeService{}}

	resp, err := a.handler(context.Background(), request("NE47", ""))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body finder.Nearest
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "NE47", body.Postcode)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "Hadrian's Wall", body.Rows[0].Name)

	resp, err = a.handler(context.Background(), request("NE47", "geojson"))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Body, `"FeatureCollection"`)
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		req    events.APIGatewayProxyRequest
		err    error
		status int
		body   string
	}{
		{"missing postcode", events.APIGatewayProxyRequest{}, nil, 400, "E_INVALID_REQUEST"},
		{"long postcode", request("ABCDEFGHIJ", ""), nil, 400, "E_INVALID_POSTCODE_FORMAT"},
		{"not found", request("ZZ9", ""), domain.NewErrorf(domain.ErrPostcodeNotFound, "missing"), 404, "E_POSTCODE_NOT_FOUND"},
		{"invalid coordinate", request("BAD1", "geojson"), domain.NewErrorf(domain.ErrInvalidCoordinate, "bad"), 422, "E_INVALID_COORDINATE"},
		{"data load", request("NE47", ""), domain.NewErrorf(domain.ErrDataLoad, "gone"), 500, "E_INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &app{svc: &fakeService{err: tt.err}}
			resp, err := a.handler(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, resp.Body, tt.body)
		})
	}
}

func TestHandlerEncodeError(t *testing.T) {
	a := &app{svc: &fakeService{distance: math.NaN()}}

	resp, err := a.handler(context.Background(), request("NE47", ""))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Contains(t, resp.Body, "E_ENCODE")
}
