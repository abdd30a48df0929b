package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/middleware"
	"github.com/primeitclub/ict-meetup-api/internal/service"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/response"
)

type VersionController struct {
	service service.VersionService
}

func CreateVersionController(g *echo.Group, service service.VersionService) {
	vc := VersionController{
		service: service,
	}

	versions := g.Group("/flagship-event/versions")
	versions.POST("", vc.AddVersion)
	versions.GET("", vc.GetVersions)
	versions.GET("/current", vc.GetCurrentVersion)
	versions.GET("/slug/:slug", vc.GetVersionBySlug)
	versions.GET("/:id", vc.GetVersionByID)
	versions.PATCH("/:id", vc.UpdateVersion)
	versions.DELETE("/:id", vc.DeleteVersion)
}

// AddVersion godoc
//
//	@Summary	Create a flagship event version
//	@Tags		flagship-event
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		dto.VersionRequest	true	"Version"
//	@Success	201		{object}	response.SuccessResponse{data=dto.VersionResponse}
//	@Failure	400		{object}	response.ErrorResponse
//	@Router		/flagship-event/versions [post]
func (vc *VersionController) AddVersion(c echo.Context) error {
	payload := dto.VersionRequest{}
	if details, ok := bindRequest(c, "AddVersion", &payload); !ok {
		return response.WriteErrorResponse(c, errs.ErrValidation, details)
	}

	res, err := vc.service.AddVersion(c.Request().Context(), payload, middleware.GetActor(c))
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteCreatedResponse(c, "Flagship event version created successfully", res)
}

// GetVersions godoc
//
//	@Summary	List flagship event versions, highest version number first
//	@Tags		flagship-event
//	@Produce	json
//	@Success	200	{object}	response.SuccessResponse{data=[]dto.VersionResponse}
//	@Router		/flagship-event/versions [get]
func (vc *VersionController) GetVersions(c echo.Context) error {
	res, err := vc.service.GetVersions(c.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Fetch all versions successfully", res)
}

// GetCurrentVersion godoc
//
//	@Summary	Get the current flagship event version
//	@Tags		flagship-event
//	@Produce	json
//	@Success	200	{object}	response.SuccessResponse{data=dto.VersionResponse}
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/flagship-event/versions/current [get]
func (vc *VersionController) GetCurrentVersion(c echo.Context) error {
	res, found, err := vc.service.GetCurrentVersion(c.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	if !found {
		return response.WriteErrorResponse(c, errs.ErrNoCurrentVersion, nil)
	}

	return response.WriteSuccessResponse(c, "Fetch current active version successfully", res)
}

// GetVersionByID godoc
//
//	@Summary	Get a flagship event version by id
//	@Tags		flagship-event
//	@Produce	json
//	@Param		id	path		string	true	"Version id"
//	@Success	200	{object}	response.SuccessResponse{data=dto.VersionResponse}
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/flagship-event/versions/{id} [get]
func (vc *VersionController) GetVersionByID(c echo.Context) error {
	res, err := vc.service.GetVersionByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Fetch version by id successfully", res)
}

// GetVersionBySlug godoc
//
//	@Summary	Get a flagship event version by slug
//	@Tags		flagship-event
//	@Produce	json
//	@Param		slug	path		string	true	"Version slug"
//	@Success	200		{object}	response.SuccessResponse{data=dto.VersionResponse}
//	@Failure	404		{object}	response.ErrorResponse
//	@Router		/flagship-event/versions/slug/{slug} [get]
func (vc *VersionController) GetVersionBySlug(c echo.Context) error {
	res, err := vc.service.GetVersionBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Fetch version by slug successfully", res)
}

// UpdateVersion godoc
//
//	@Summary		Update a flagship event version
//	@Description	Only the fields present are changed. Setting status to active archives the previous current version.
//	@Tags			flagship-event
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Version id"
//	@Param			payload	body		dto.VersionPatchRequest	true	"Fields to change"
//	@Success		200		{object}	response.SuccessResponse{data=dto.VersionResponse}
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/flagship-event/versions/{id} [patch]
func (vc *VersionController) UpdateVersion(c echo.Context) error {
	payload := dto.VersionPatchRequest{}
	if details, ok := bindRequest(c, "UpdateVersion", &payload); !ok {
		return response.WriteErrorResponse(c, errs.ErrValidation, details)
	}

	res, err := vc.service.UpdateVersion(c.Request().Context(), c.Param("id"), payload, middleware.GetActor(c))
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Flagship event version updated successfully", res)
}

// DeleteVersion godoc
//
//	@Summary	Delete a flagship event version that is not active
//	@Tags		flagship-event
//	@Produce	json
//	@Param		id	path		string	true	"Version id"
//	@Success	200	{object}	response.SuccessResponse
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/flagship-event/versions/{id} [delete]
func (vc *VersionController) DeleteVersion(c echo.Context) error {
	err := vc.service.DeleteVersion(c.Request().Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Flagship event version deleted successfully", nil)
}
