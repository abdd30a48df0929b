package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/primeitclub/ict-meetup-api/internal/service"
	pkgdto "github.com/primeitclub/ict-meetup-api/pkg/dto"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/response"
	"github.com/rs/zerolog/log"
)

type AuditLogController struct {
	service service.AuditLogService
}

func CreateAuditLogController(g *echo.Group, service service.AuditLogService) {
	alc := AuditLogController{
		service: service,
	}

	g.GET("/audit-logs", alc.GetAuditLogs)
}

// GetAuditLogs godoc
//
//	@Summary	List audit logs, newest first
//	@Tags		audit-logs
//	@Produce	json
//	@Param		page		query		int		false	"Page, starting at 1"
//	@Param		limit		query		int		false	"Page size, at most 100"
//	@Param		table_name	query		string	false	"Table name"
//	@Param		record_id	query		string	false	"Record id"
//	@Param		scope		query		string	false	"Scope"
//	@Param		action		query		string	false	"Action"
//	@Success	200			{object}	response.SuccessResponse{data=pkgdto.PaginationResponse}
//	@Router		/audit-logs [get]
func (alc *AuditLogController) GetAuditLogs(c echo.Context) error {
	filter := pkgdto.Filter{}
	if err := c.Bind(&filter); err != nil {
		log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "GetAuditLogs").Msg("")
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}

	res, err := alc.service.GetAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Fetch audit logs successfully", res)
}
