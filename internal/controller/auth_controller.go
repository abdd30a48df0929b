package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/middleware"
	"github.com/primeitclub/ict-meetup-api/internal/service"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/response"
)

type AuthController struct {
	service service.AuthService
}

func CreateAuthController(g *echo.Group, service service.AuthService) {
	ac := AuthController{
		service: service,
	}

	g.POST("/auth/login", ac.Login)
}

// Login godoc
//
//	@Summary	Exchange credentials for a bearer token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		dto.LoginRequest	true	"Credentials"
//	@Success	200		{object}	response.SuccessResponse{data=dto.LoginResponse}
//	@Failure	401		{object}	response.ErrorResponse
//	@Router		/auth/login [post]
func (ac *AuthController) Login(c echo.Context) error {
	payload := dto.LoginRequest{}
	if details, ok := bindRequest(c, "Login", &payload); !ok {
		return response.WriteErrorResponse(c, errs.ErrValidation, details)
	}

	res, err := ac.service.Login(c.Request().Context(), payload, middleware.GetActor(c))
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Login successful", res)
}
