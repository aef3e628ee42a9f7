package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/models/dto"
	"github.com/tutorhall/tutorhall/internal/app/schedule"
	"github.com/tutorhall/tutorhall/internal/app/services"
	"github.com/tutorhall/tutorhall/internal/middleware"
)

// ProgramController handles program and weekly slot operations
type ProgramController struct {
	programService services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

// CreateProgram handles program creation
// @Summary Create a new program
// @Description Creates a new weekly program for a term
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgramRequest true "Program information"
// @Success 201 {object} dto.APIResponse{data=models.Program} "Program created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	program := models.Program{Name: req.Name, Term: models.Term(req.Term)}
	if err := c.programService.CreateProgram(ctx, &program); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(program))
}

// GetProgramByID retrieves a program with its weekly slots
// @Summary Get program by ID
// @Description Retrieves a specific program together with its weekly slots
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.Program} "Program retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id} [get]
func (c *ProgramController) GetProgramByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	program, err := c.programService.GetProgramByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(program))
}

// GetAllPrograms retrieves all programs
// @Summary Get all programs
// @Description Retrieves a list of all programs
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Program} "Programs retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [get]
func (c *ProgramController) GetAllPrograms(ctx *gin.Context) {
	programs, err := c.programService.GetAllPrograms(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(programs))
}

// UpdateProgram updates an existing program
// @Summary Update a program
// @Description Updates an existing program with the provided information
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Updated program information"
// @Success 200 {object} dto.APIResponse{data=models.Program} "Program updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	program := models.Program{ID: id, Name: req.Name, Term: models.Term(req.Term)}
	if err := c.programService.UpdateProgram(ctx, &program); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(program))
}

// DeleteProgram deletes a program
// @Summary Delete a program
// @Description Deletes a program together with its weekly slots and their overrides
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 204 "Program deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.programService.DeleteProgram(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreateProgramItem schedules a class into a program
// @Summary Add a weekly slot
// @Description Schedules a class into a program's weekly slot; slot fields may be filled in later
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.CreateProgramItemRequest true "Slot information"
// @Success 201 {object} dto.APIResponse{data=models.ProgramItem} "Slot created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program or class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/items [post]
func (c *ProgramController) CreateProgramItem(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateProgramItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, ok := buildProgramItem(ctx, programID, req.ClassID, req.DayOfWeek, req.StartTime, req.EndTime, req.ValidFrom, req.ValidUntil)
	if !ok {
		return
	}

	if err := c.programService.CreateItem(ctx, item); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(item))
}

// GetProgramItems lists the weekly slots of a program
// @Summary List weekly slots
// @Description Retrieves all weekly slots of a program
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ProgramItem} "Slots retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/items [get]
func (c *ProgramController) GetProgramItems(ctx *gin.Context) {
	programID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	items, err := c.programService.GetItemsByProgramID(ctx, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(items))
}

// UpdateProgramItem replaces a weekly slot's rule
// @Summary Update a weekly slot
// @Description Replaces the rule of a weekly slot; stored date overrides are kept
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program item ID"
// @Param request body dto.UpdateProgramItemRequest true "Updated slot information"
// @Success 200 {object} dto.APIResponse{data=models.ProgramItem} "Slot updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /program-items/{id} [put]
func (c *ProgramController) UpdateProgramItem(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProgramItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, ok := buildProgramItem(ctx, 0, req.ClassID, req.DayOfWeek, req.StartTime, req.EndTime, req.ValidFrom, req.ValidUntil)
	if !ok {
		return
	}
	item.ID = itemID

	if err := c.programService.UpdateItem(ctx, item); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(item))
}

// DeleteProgramItem removes a weekly slot
// @Summary Delete a weekly slot
// @Description Removes a weekly slot and its stored overrides
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program item ID"
// @Success 204 "Slot deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid program item ID"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /program-items/{id} [delete]
func (c *ProgramController) DeleteProgramItem(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.programService.DeleteItem(ctx, itemID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// buildProgramItem converts slot request fields into a model, parsing the
// validity dates. It writes the error response itself on bad input.
func buildProgramItem(ctx *gin.Context, programID, classID int64, dayOfWeek *int, startTime, endTime, validFrom, validUntil *string) (*models.ProgramItem, bool) {
	item := &models.ProgramItem{
		ProgramID: programID,
		ClassID:   classID,
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
	}

	if validFrom != nil {
		parsed, err := schedule.ParseDate(*validFrom)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid validFrom date")
			errorDetail = errorDetail.WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return nil, false
		}
		item.ValidFrom = &parsed
	}
	if validUntil != nil {
		parsed, err := schedule.ParseDate(*validUntil)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid validUntil date")
			errorDetail = errorDetail.WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return nil, false
		}
		item.ValidUntil = &parsed
	}

	return item, true
}
