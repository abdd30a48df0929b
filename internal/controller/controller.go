package controller

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/pkg/response"
	"github.com/primeitclub/ict-meetup-api/pkg/validator"
	"github.com/rs/zerolog/log"
)

// bindRequest decodes the request into payload and validates it. On failure it
// returns the field details to send back with errs.ErrValidation.
func bindRequest(c echo.Context, component string, payload interface{}) ([]response.ValidationError, bool) {
	if err := c.Bind(payload); err != nil {
		log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", component).Msg("")

		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			message = fmt.Sprint(he.Message)
		}

		return []response.ValidationError{{Field: "body", Tag: "bind", Message: message}}, false
	}

	if err := c.Validate(payload); err != nil {
		return validator.Details(err), false
	}

	return nil, true
}
