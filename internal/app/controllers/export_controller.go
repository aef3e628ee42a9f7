package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhall/tutorhall/internal/app/models/dto"
	"github.com/tutorhall/tutorhall/internal/app/services"
	"github.com/tutorhall/tutorhall/internal/middleware"
)

// ExportController handles timetable downloads
type ExportController struct {
	exportService services.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exportService services.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportTimetable downloads a program's timetable window as a file
// @Summary Export timetable
// @Description Renders the materialized timetable of a program as an iCalendar or Excel file
// @Tags timetable
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param from query string true "Window start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "Window end date (YYYY-MM-DD, inclusive)"
// @Param format query string true "Export format" Enums(ics, xlsx)
// @Success 200 {file} binary "Timetable file"
// @Failure 400 {object} dto.ErrorResponse "Invalid window or format"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/timetable/export [get]
func (c *ExportController) ExportTimetable(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	window, ok := parseWindow(ctx)
	if !ok {
		return
	}

	format := ctx.Query("format")
	switch format {
	case "ics":
		buf, filename, err := c.exportService.ExportICS(ctx, programID, window)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		ctx.Data(http.StatusOK, "text/calendar", buf.Bytes())
	case "xlsx":
		buf, filename, err := c.exportService.ExportXLSX(ctx, programID, window)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid format parameter")
		errorDetail = errorDetail.WithDetails("format must be one of: ics, xlsx")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	}
}
