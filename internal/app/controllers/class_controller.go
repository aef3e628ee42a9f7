package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/models/dto"
	"github.com/tutorhall/tutorhall/internal/app/services"
	"github.com/tutorhall/tutorhall/internal/middleware"
)

// ClassController handles class-related operations
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass handles class creation
// @Summary Create a new class
// @Description Creates a new class group with the provided information
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=models.Class} "Class created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Subject or tutor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class := models.Class{
		Name:      req.Name,
		SubjectID: req.SubjectID,
		TutorID:   req.TutorID,
		Capacity:  req.Capacity,
	}
	if err := c.classService.CreateClass(ctx, &class); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(class))
}

// GetClassByID retrieves a class by ID
// @Summary Get class by ID
// @Description Retrieves a specific class with its subject and tutor
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [get]
func (c *ClassController) GetClassByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	class, err := c.classService.GetClassByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class))
}

// GetAllClasses retrieves classes with optional filters
// @Summary Get all classes
// @Description Retrieves a list of classes, optionally filtered by subject and tutor
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param subjectId query int false "Filter by subject ID"
// @Param tutorId query int false "Filter by tutor ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Classes retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) GetAllClasses(ctx *gin.Context) {
	subjectID, ok := parseOptionalIDQuery(ctx, "subjectId")
	if !ok {
		return
	}
	tutorID, ok := parseOptionalIDQuery(ctx, "tutorId")
	if !ok {
		return
	}

	classes, err := c.classService.GetAllClasses(ctx, subjectID, tutorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classes))
}

// UpdateClass updates an existing class
// @Summary Update a class
// @Description Updates an existing class with the provided information
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Updated class information"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class := models.Class{
		ID:        id,
		Name:      req.Name,
		SubjectID: req.SubjectID,
		TutorID:   req.TutorID,
		Capacity:  req.Capacity,
	}
	if err := c.classService.UpdateClass(ctx, &class); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class))
}

// DeleteClass deletes a class
// @Summary Delete a class
// @Description Deletes a class that is not scheduled in any program
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 204 "Class deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Class is scheduled in a program"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.classService.DeleteClass(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseOptionalIDQuery parses an optional positive integer query parameter
func parseOptionalIDQuery(ctx *gin.Context, name string) (*int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &parsed, true
}
