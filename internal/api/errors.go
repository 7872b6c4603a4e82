package api

import (
	"errors"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/rpgo/rothtrad/internal/domain"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// statusFor maps engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidJurisdiction):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrLimitLookupFailure):
		return fasthttp.StatusNotFound
	default:
		return fasthttp.StatusInternalServerError
	}
}

func statusLabel(status int) string { return strconv.Itoa(status) }
