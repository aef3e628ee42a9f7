package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/models/dto"
	"github.com/tutorhall/tutorhall/internal/app/schedule"
	"github.com/tutorhall/tutorhall/internal/app/services"
	"github.com/tutorhall/tutorhall/internal/middleware"
)

// ScheduleController handles timetable materialization and single-occurrence
// edits
type ScheduleController struct {
	scheduleService services.ScheduleService
	classService    *services.ClassService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService services.ScheduleService, classService *services.ClassService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
		classService:    classService,
	}
}

// GetTimetable materializes a program's timetable for a date window
// @Summary Get timetable
// @Description Computes the concrete occurrences of a program inside an inclusive date window
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param from query string true "Window start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "Window end date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.APIResponse{data=dto.TimetableResponse} "Timetable computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid window"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/timetable [get]
func (c *ScheduleController) GetTimetable(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	window, ok := parseWindow(ctx)
	if !ok {
		return
	}

	occurrences, err := c.scheduleService.Timetable(ctx, programID, window)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	classIDs := make([]int64, 0, len(occurrences))
	seen := make(map[int64]bool)
	for _, occ := range occurrences {
		if !seen[occ.ClassID] {
			seen[occ.ClassID] = true
			classIDs = append(classIDs, occ.ClassID)
		}
	}
	classes, err := c.classService.GetClassesByIDs(ctx, classIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.TimetableResponse{
		ProgramID:   programID,
		From:        schedule.FormatDate(window.From),
		To:          schedule.FormatDate(window.To),
		Occurrences: make([]dto.OccurrenceResponse, 0, len(occurrences)),
	}
	for _, occ := range occurrences {
		response.Occurrences = append(response.Occurrences, toOccurrenceResponse(occ, classes))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// RetimeOccurrence pins one occurrence to replacement times
// @Summary Retime an occurrence
// @Description Changes the times of one occurrence on one date without touching the weekly rule
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program item ID"
// @Param request body dto.RetimeOccurrenceRequest true "Replacement times"
// @Success 200 {object} dto.APIResponse{data=dto.OverrideResponse} "Occurrence retimed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /program-items/{id}/occurrences/retime [post]
func (c *ScheduleController) RetimeOccurrence(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RetimeOccurrenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	date, ok := parseDateField(ctx, "date", req.Date)
	if !ok {
		return
	}

	override, err := c.scheduleService.Retime(ctx, itemID, date, req.StartTime, req.EndTime)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toOverrideResponse(override)))
}

// RelocateOccurrence moves one occurrence to another date
// @Summary Relocate an occurrence
// @Description Moves one occurrence from its cycle date to another date, suppressing the old date and materializing the new one atomically
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program item ID"
// @Param request body dto.RelocateOccurrenceRequest true "Old and new dates with times"
// @Success 200 {object} dto.APIResponse{data=dto.OverrideResponse} "Occurrence relocated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Failure 409 {object} dto.ErrorResponse "Relocation may be partially applied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /program-items/{id}/occurrences/relocate [post]
func (c *ScheduleController) RelocateOccurrence(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RelocateOccurrenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	oldDate, ok := parseDateField(ctx, "oldDate", req.OldDate)
	if !ok {
		return
	}
	newDate, ok := parseDateField(ctx, "newDate", req.NewDate)
	if !ok {
		return
	}

	override, err := c.scheduleService.Relocate(ctx, itemID, oldDate, newDate, req.StartTime, req.EndTime)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toOverrideResponse(override)))
}

// CancelOccurrence suppresses one occurrence
// @Summary Cancel an occurrence
// @Description Suppresses the occurrence of a slot on one date; every other date keeps materializing
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program item ID"
// @Param request body dto.CancelOccurrenceRequest true "Date to cancel"
// @Success 200 {object} dto.APIResponse{data=dto.OverrideResponse} "Occurrence cancelled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /program-items/{id}/occurrences/cancel [post]
func (c *ScheduleController) CancelOccurrence(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CancelOccurrenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	date, ok := parseDateField(ctx, "date", req.Date)
	if !ok {
		return
	}

	override, err := c.scheduleService.Cancel(ctx, itemID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toOverrideResponse(override)))
}

// parseWindow parses the from/to query parameters into an inclusive window
func parseWindow(ctx *gin.Context) (schedule.DateRange, bool) {
	from, ok := parseDateField(ctx, "from", ctx.Query("from"))
	if !ok {
		return schedule.DateRange{}, false
	}
	to, ok := parseDateField(ctx, "to", ctx.Query("to"))
	if !ok {
		return schedule.DateRange{}, false
	}
	return schedule.NewDateRange(from, to), true
}

// parseDateField parses a YYYY-MM-DD value, writing the error response itself
// when the value is missing or malformed
func parseDateField(ctx *gin.Context, name, value string) (time.Time, bool) {
	parsed, err := schedule.ParseDate(value)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" date")
		errorDetail = errorDetail.WithDetails(name + " must be a YYYY-MM-DD date")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return time.Time{}, false
	}
	return parsed, true
}

// toOccurrenceResponse converts a materialized occurrence to its response DTO
func toOccurrenceResponse(occ schedule.Occurrence, classes map[int64]*models.Class) dto.OccurrenceResponse {
	resp := dto.OccurrenceResponse{
		ProgramItemID: occ.ProgramItemID,
		ProgramID:     occ.ProgramID,
		ClassID:       occ.ClassID,
		Date:          schedule.FormatDate(occ.Date),
		StartTime:     occ.Start.Format(schedule.ClockLayout),
		EndTime:       occ.End.Format(schedule.ClockLayout),
		Overridden:    occ.OverrideID != nil,
	}
	if class, ok := classes[occ.ClassID]; ok {
		classResp := dto.ClassResponse{
			ID:        class.ID,
			Name:      class.Name,
			SubjectID: class.SubjectID,
			TutorID:   class.TutorID,
			Capacity:  class.Capacity,
		}
		if class.Subject != nil {
			classResp.SubjectName = class.Subject.Name
		}
		if class.Tutor != nil {
			classResp.TutorName = class.Tutor.FirstName + " " + class.Tutor.LastName
		}
		resp.Class = &classResp
	}
	return resp
}

// toOverrideResponse converts an override row to its response DTO
func toOverrideResponse(ov *models.ScheduleOverride) dto.OverrideResponse {
	return dto.OverrideResponse{
		ID:            ov.ID,
		ProgramItemID: ov.ProgramItemID,
		Date:          schedule.FormatDate(ov.Date),
		StartTime:     ov.StartTime,
		EndTime:       ov.EndTime,
		Cancelled:     ov.Cancelled,
	}
}
