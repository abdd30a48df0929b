package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/internal/service"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/response"
)

const defaultUploadVersion = "common"

type UploadController struct {
	service service.UploadService
}

func CreateUploadController(g *echo.Group, service service.UploadService) {
	uc := UploadController{
		service: service,
	}

	g.POST("/users/avatar", uc.UploadAvatar)
}

// UploadAvatar godoc
//
//	@Summary	Upload a user avatar image
//	@Tags		uploads
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		image	formData	file	true	"png, jpg, jpeg or webp, at most 150KB"
//	@Param		version	formData	string	false	"Asset folder, defaults to common"
//	@Success	201		{object}	response.SuccessResponse{data=dto.UploadedImage}
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	413		{object}	response.ErrorResponse
//	@Failure	502		{object}	response.ErrorResponse
//	@Router		/users/avatar [post]
func (uc *UploadController) UploadAvatar(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return response.WriteErrorResponse(c, errs.ErrImageRequired, nil)
		}
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}

	version := c.FormValue("version")
	if version == "" {
		version = defaultUploadVersion
	}

	res, err := uc.service.UploadImage(c.Request().Context(), version, "users", file)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteCreatedResponse(c, "Image uploaded successfully", res)
}
