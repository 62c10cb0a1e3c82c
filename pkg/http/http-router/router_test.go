package http_router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	"github.com/thomhuang/MonumentsByPostcode/pkg/mapper"
)

type fakeService struct {
	err   error
	panic bool
}

func (s *fakeService) Nearest(ctx context.Context, postcode string) (*finder.Nearest, error) {
	if s.panic {
		panic("boom")
	}
	if s.err != nil {
		return nil, s.err
	}
	return &finder.Nearest{
		Postcode: strings.ToUpper(postcode),
		Origin:   orb.Point{385000, 564000},
		Rows: []finder.Result{
			{Index: 0, Name: "Hadrian's Wall", Distance: 120, Centroid: orb.Point{385100, 564100}},
			{Index: 1, Name: "Vindolanda", Distance: 950, Centroid: orb.Point{377100, 566300}},
		},
	}, nil
}

func (s *fakeService) Map(ctx context.Context, postcode string) (*mapper.Map, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &mapper.Map{
		ID:       "map_0123456789abcdef0123456789abcdef",
		Postcode: strings.ToUpper(postcode),
		Center:   mapper.LatLon{Lat: 52.4776, Lon: 1.8944},
		Zoom:     6,
		Markers: []mapper.Marker{
			{Lat: 54.99, Lon: -2.36, Popup: "Hadrian's Wall", Color: "red", Icon: "info-sign"},
		},
	}, nil
}

func newTestHandler(svc *fakeService) http.Handler {
	return NewAPI(zap.NewNop()).Handler(svc, prometheus.NewRegistry())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNearest(t *testing.T) {
	h := newTestHandler(&fakeService{})

	rec := get(t, h, "/api/monuments/nearest?postcode=ne47")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Data finder.Nearest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NE47", body.Data.Postcode)
	require.Len(t, body.Data.Rows, 2)
	assert.Equal(t, "Hadrian's Wall", body.Data.Rows[0].Name)
}

func TestNearestXLSX(t *testing.T) {
	h := newTestHandler(&fakeService{})

	rec := get(t, h, "/api/monuments/nearest?postcode=NE47&format=xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "NE47.xlsx")
	// xlsx is a zip archive
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestNearestErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"missing postcode", "/api/monuments/nearest", nil, http.StatusBadRequest},
		{"postcode too long", "/api/monuments/nearest?postcode=ABCDEFGHIJ", nil, http.StatusBadRequest},
		{"postcode not alphanumeric", "/api/monuments/nearest?postcode=NE4%3B", nil, http.StatusBadRequest},
		{"unknown format", "/api/monuments/nearest?postcode=NE47&format=csv", nil, http.StatusBadRequest},
		{
			"not found", "/api/monuments/nearest?postcode=ZZ9",
			domain.NewErrorf(domain.ErrPostcodeNotFound, "postcode %q not found", "ZZ9"), http.StatusNotFound,
		},
		{
			"invalid coordinate", "/api/monuments/nearest?postcode=BAD1",
			domain.NewErrorf(domain.ErrInvalidCoordinate, "bad"), http.StatusUnprocessableEntity,
		},
		{
			"data load", "/api/monuments/nearest?postcode=NE47",
			domain.NewErrorf(domain.ErrDataLoad, "missing file"), http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeService{err: tt.err})
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.status, rec.Code)

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusText(tt.status), body.Error.Code)
			if tt.status == http.StatusInternalServerError {
				assert.Equal(t, domain.MessageInternalServerError, body.Error.Message)
			}
		})
	}
}

func TestMap(t *testing.T) {
	h := newTestHandler(&fakeService{})

	t.Run("html", func(t *testing.T) {
		rec := get(t, h, "/api/monuments/map?postcode=NE47")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "map_0123456789abcdef0123456789abcdef")
	})

	t.Run("geojson", func(t *testing.T) {
		rec := get(t, h, "/api/monuments/map?postcode=NE47&format=geojson")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"FeatureCollection"`)
	})

	t.Run("json", func(t *testing.T) {
		rec := get(t, h, "/api/monuments/map?postcode=NE47&format=json")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data mapper.Map `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 6, body.Data.Zoom)
		require.Len(t, body.Data.Markers, 1)
		assert.Equal(t, "Hadrian's Wall", body.Data.Markers[0].Popup)
	})

	t.Run("not found", func(t *testing.T) {
		h := newTestHandler(&fakeService{err: domain.NewErrorf(domain.ErrPostcodeNotFound, "missing")})
		rec := get(t, h, "/api/monuments/map?postcode=ZZ9")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAmbientRoutes(t *testing.T) {
	h := newTestHandler(&fakeService{})

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	_ = get(t, h, "/api/monuments/nearest?postcode=NE47")
	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "monuments_total_requests")

	rec = get(t, h, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/monuments/nearest")
}

func TestMetricsPathLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewAPI(zap.NewNop()).Handler(&fakeService{}, reg)

	_ = get(t, h, "/api/monuments/nearest?postcode=NE47")
	_ = get(t, h, "/swagger/doc.json")
	_ = get(t, h, "/swagger/index.html")
	for _, p := range []string{"/nope", "/wp-admin", "/api/monuments/unknown"} {
		rec := get(t, h, p)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, mf := range families {
		if mf.GetName() != "monuments_total_requests" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "path" {
					paths[l.GetValue()] = true
				}
			}
		}
	}
	assert.Equal(t, map[string]bool{
		"/api/monuments/nearest": true,
		"/swagger/*any":          true,
		unmatchedRoute:           true,
	}, paths)
}

func TestRecoverPanic(t *testing.T) {
	h := newTestHandler(&fakeService{panic: true})

	rec := get(t, h, "/api/monuments/nearest?postcode=NE47")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "not-an-ip")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.1:1234", got)
}
