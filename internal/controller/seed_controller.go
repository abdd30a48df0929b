package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/middleware"
	"github.com/primeitclub/ict-meetup-api/internal/service"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/response"
)

type SeedController struct {
	service service.SeedService
}

func CreateSeedController(g *echo.Group, service service.SeedService) {
	sc := SeedController{
		service: service,
	}

	g.POST("/seeds/init", sc.SeedStaticUsers)
	g.POST("/seeds/create", sc.SeedUser)
}

// SeedStaticUsers godoc
//
//	@Summary	Create the built-in users, skipping emails that already exist
//	@Tags		seeds
//	@Produce	json
//	@Success	200	{object}	response.SuccessResponse{data=[]dto.SeedResult}
//	@Router		/seeds/init [post]
func (sc *SeedController) SeedStaticUsers(c echo.Context) error {
	res := sc.service.SeedStaticUsers(c.Request().Context(), middleware.GetActor(c))

	return response.WriteSuccessResponse(c, "Static user seeding process completed", res)
}

// SeedUser godoc
//
//	@Summary	Create a single user
//	@Tags		seeds
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		dto.SeedUserRequest	true	"User"
//	@Success	201		{object}	response.SuccessResponse{data=dto.SeedResult}
//	@Success	200		{object}	response.SuccessResponse{data=dto.SeedResult}	"User already exists"
//	@Failure	400		{object}	response.ErrorResponse
//	@Router		/seeds/create [post]
func (sc *SeedController) SeedUser(c echo.Context) error {
	payload := dto.SeedUserRequest{}
	if details, ok := bindRequest(c, "SeedUser", &payload); !ok {
		return response.WriteErrorResponse(c, errs.ErrValidation, details)
	}

	res, err := sc.service.SeedUser(c.Request().Context(), payload, middleware.GetActor(c))
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	if res.Status == dto.SeedStatusSkipped {
		return response.WriteSuccessResponseWithStatus(c, http.StatusOK, res.Message, res)
	}

	return response.WriteCreatedResponse(c, "User created successfully", res)
}
