package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/export"
	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	helper "github.com/thomhuang/MonumentsByPostcode/pkg/http/http-router/router-helper"
	"github.com/thomhuang/MonumentsByPostcode/pkg/mapper"
)

var (
	regexPostcode = regexp.MustCompile("^[A-Za-z0-9 ]+$")
)

type monumentAPI struct {
	monumentService MonumentService
	log             *zap.Logger
	validate        *validator.Validate
	trans           ut.Translator
}

func New(monumentService MonumentService, log *zap.Logger) *monumentAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &monumentAPI{
		monumentService: monumentService,
		log:             log,
		validate:        validate,
		trans:           trans,
	}
}

func (api *monumentAPI) Routes(group *helper.RouteGroup) {
	group.GET("/monuments/nearest", api.nearest)
	group.GET("/monuments/map", api.renderMap)
}

// nearestRequest model info
//
//	@Description	query parameters for the nearest monuments lookup.
type nearestRequest struct {
	Postcode string `json:"postcode" validate:"required,max=8"`          // postcode district, e.g. NE47.
	Format   string `json:"format" validate:"omitempty,oneof=json xlsx"` // response format, json by default.
}

// nearestResponse model info
//
//	@Description	the monuments nearest to a postcode, closest first.
type nearestResponse struct {
	Data finder.Nearest `json:"data"`
}

// mapRequest model info
//
//	@Description	query parameters for the monuments map.
type mapRequest struct {
	Postcode string `json:"postcode" validate:"required,max=8"`                   // postcode district, e.g. NE47.
	Format   string `json:"format" validate:"omitempty,oneof=html geojson json"` // response format, html by default.
}

// mapResponse model info
//
//	@Description	map centre, zoom and one marker per nearby monument.
type mapResponse struct {
	Data mapper.Map `json:"data"`
}

func (api *monumentAPI) validateRequest(w http.ResponseWriter, r *http.Request, request interface{}, postcode string) bool {
	if err := api.validate.Struct(request); err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("validation error"), translateError(err, api.trans)...)
		return false
	}
	if !regexPostcode.MatchString(postcode) {
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: postcode must be alphanumeric"))
		return false
	}
	return true
}

// nearest godoc
//
//	@Summary		the five scheduled monuments closest to a postcode.
//	@Description	resolves the postcode to its reference point and returns the nearest scheduled monuments sorted by planar distance in metres.
//	@Tags			monuments
//	@ID				nearest
//	@Param			postcode	query	string	true	"postcode district"
//	@Param			format		query	string	false	"json or xlsx"
//	@Produce		application/json
//	@Router			/api/monuments/nearest [get]
//	@Success		200	{object}	nearestResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		422	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *monumentAPI) nearest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := nearestRequest{
		Postcode: strings.TrimSpace(r.URL.Query().Get("postcode")),
		Format:   strings.ToLower(r.URL.Query().Get("format")),
	}
	if !api.validateRequest(w, r, request, request.Postcode) {
		return
	}

	result, err := api.monumentService.Nearest(r.Context(), request.Postcode)
	if err != nil {
		api.ErrorResponse(w, r, err)
		return
	}

	if request.Format == "xlsx" {
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, result); err != nil {
			api.ServerErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Postcode+".xlsx"))
		_, _ = w.Write(buf.Bytes())
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": result}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// renderMap godoc
//
//	@Summary		map of the monuments closest to a postcode.
//	@Description	places one marker per nearby monument at its centroid. Returns a Leaflet page, GeoJSON markers or the map as json.
//	@Tags			monuments
//	@ID				map
//	@Param			postcode	query	string	true	"postcode district"
//	@Param			format		query	string	false	"html, geojson or json"
//	@Produce		text/html
//	@Produce		application/json
//	@Router			/api/monuments/map [get]
//	@Success		200	{object}	mapResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		422	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *monumentAPI) renderMap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := mapRequest{
		Postcode: strings.TrimSpace(r.URL.Query().Get("postcode")),
		Format:   strings.ToLower(r.URL.Query().Get("format")),
	}
	if !api.validateRequest(w, r, request, request.Postcode) {
		return
	}

	m, err := api.monumentService.Map(r.Context(), request.Postcode)
	if err != nil {
		api.ErrorResponse(w, r, err)
		return
	}

	switch request.Format {
	case "json":
		if err := api.writeJSON(w, http.StatusOK, envelope{"data": m}, nil); err != nil {
			api.ServerErrorResponse(w, r, err)
		}
	case "geojson":
		raw, err := m.GeoJSON().MarshalJSON()
		if err != nil {
			api.ServerErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(raw)
	default:
		var buf bytes.Buffer
		if err := m.WriteHTML(&buf); err != nil {
			api.ServerErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}
