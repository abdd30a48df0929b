package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return WriteSuccessResponseWithStatus(c, http.StatusOK, message, data)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	return WriteSuccessResponseWithStatus(c, http.StatusCreated, message, data)
}

func WriteSuccessResponseWithStatus(c echo.Context, statusCode int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(statusCode, resp)
}

// WriteErrorResponse is the only place errors become HTTP responses. Errors
// that are not registered in errs are reported as a generic 500.
func WriteErrorResponse(c echo.Context, err error, details interface{}) error {
	resolved := errs.Resolve(err)
	statusCode := errs.GetErrorStatusCode(resolved)
	if statusCode >= http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "WriteErrorResponse").Msg("")
	}

	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = resolved.Error()
	resp.Details = details

	return c.JSON(statusCode, resp)
}
