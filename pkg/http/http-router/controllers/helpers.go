package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/domain"
)

// writeJSON marshals data structure to encoded JSON response.
func (api *monumentAPI) writeJSON(w http.ResponseWriter, status int, data interface{},
	headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')
	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		api.log.Error("failed to write JSON response", zap.Error(err))
		return err
	}

	return nil
}

type errorResponse struct {
	Error struct {
		Code       string   `json:"code"`
		Message    string   `json:"message"`
		Validation []string `json:"validation,omitempty"`
	} `json:"error"`
}

func (api *monumentAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int,
	message string, validation []string) {
	var res errorResponse
	res.Error.Code = http.StatusText(status)
	res.Error.Message = message
	res.Error.Validation = validation

	if err := api.writeJSON(w, status, res, nil); err != nil {
		api.log.Error("failed to write error response", zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *monumentAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error, validation ...string) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error(), validation)
}

func (api *monumentAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("request failed", zap.String("method", r.Method),
		zap.String("path", r.URL.Path), zap.Error(err))
	api.errorResponse(w, r, http.StatusInternalServerError, domain.MessageInternalServerError, nil)
}

// ErrorResponse answers with the status matching err's domain code.
func (api *monumentAPI) ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := getStatusCode(err)
	if status == http.StatusInternalServerError {
		api.ServerErrorResponse(w, r, err)
		return
	}
	api.errorResponse(w, r, status, err.Error(), nil)
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch domain.CodeOf(err) {
	case domain.ErrPostcodeNotFound:
		return http.StatusNotFound
	case domain.ErrInvalidCoordinate:
		return http.StatusUnprocessableEntity
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error, trans ut.Translator) (errs []string) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []string{err.Error()}
	}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Sprint(e.Translate(trans)))
	}
	return errs
}
