package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/models/dto"
	"github.com/tutorhall/tutorhall/internal/app/services"
	"github.com/tutorhall/tutorhall/internal/middleware"
	"github.com/tutorhall/tutorhall/internal/pkg/helpers"
)

// TutorController handles tutor-related operations
type TutorController struct {
	tutorService services.TutorService
}

// NewTutorController creates a new TutorController
func NewTutorController(tutorService services.TutorService) *TutorController {
	return &TutorController{
		tutorService: tutorService,
	}
}

// CreateTutor handles tutor creation
// @Summary Create a new tutor
// @Description Creates a new tutor with the provided information
// @Tags tutors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTutorRequest true "Tutor information"
// @Success 201 {object} dto.APIResponse{data=models.Tutor} "Tutor created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutors [post]
func (c *TutorController) CreateTutor(ctx *gin.Context) {
	var req dto.CreateTutorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tutor := models.Tutor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		SubjectID: req.SubjectID,
	}
	if err := c.tutorService.CreateTutor(ctx, &tutor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(tutor))
}

// GetTutorByID retrieves a tutor by ID
// @Summary Get tutor by ID
// @Description Retrieves a specific tutor with their subject
// @Tags tutors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tutor ID"
// @Success 200 {object} dto.APIResponse{data=models.Tutor} "Tutor retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid tutor ID"
// @Failure 404 {object} dto.ErrorResponse "Tutor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutors/{id} [get]
func (c *TutorController) GetTutorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	tutor, err := c.tutorService.GetTutorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tutor))
}

// GetAllTutors retrieves tutors with filtering and pagination
// @Summary Get all tutors
// @Description Retrieves a paginated list of tutors, optionally filtered by subject
// @Tags tutors
// @Produce json
// @Security BearerAuth
// @Param subjectId query int false "Filter by subject ID"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.TutorListResponse} "Tutors retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutors [get]
func (c *TutorController) GetAllTutors(ctx *gin.Context) {
	var subjectID *int64
	if raw := ctx.Query("subjectId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subjectId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		subjectID = &parsed
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	tutors, total, err := c.tutorService.GetAllTutors(ctx, subjectID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.TutorListResponse{
		Tutors:     make([]dto.TutorResponse, 0, len(tutors)),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	for _, tutor := range tutors {
		response.Tutors = append(response.Tutors, toTutorResponse(tutor))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// UpdateTutor updates an existing tutor
// @Summary Update a tutor
// @Description Updates an existing tutor with the provided information
// @Tags tutors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tutor ID"
// @Param request body dto.UpdateTutorRequest true "Updated tutor information"
// @Success 200 {object} dto.APIResponse{data=models.Tutor} "Tutor updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Tutor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutors/{id} [put]
func (c *TutorController) UpdateTutor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTutorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tutor := models.Tutor{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		SubjectID: req.SubjectID,
	}
	if err := c.tutorService.UpdateTutor(ctx, &tutor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tutor))
}

// DeleteTutor deletes a tutor
// @Summary Delete a tutor
// @Description Deletes an existing tutor by their ID
// @Tags tutors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tutor ID"
// @Success 204 "Tutor deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid tutor ID"
// @Failure 404 {object} dto.ErrorResponse "Tutor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutors/{id} [delete]
func (c *TutorController) DeleteTutor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.tutorService.DeleteTutor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// toTutorResponse converts a tutor model to its response DTO
func toTutorResponse(tutor *models.Tutor) dto.TutorResponse {
	resp := dto.TutorResponse{
		ID:        tutor.ID,
		FirstName: tutor.FirstName,
		LastName:  tutor.LastName,
		Email:     tutor.Email,
		Phone:     tutor.Phone,
		SubjectID: tutor.SubjectID,
	}
	if tutor.Subject != nil {
		resp.SubjectName = tutor.Subject.Name
	}
	return resp
}
