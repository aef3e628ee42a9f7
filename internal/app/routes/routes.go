package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tutorhall/tutorhall/internal/app/controllers"
	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/models/dto"
	"github.com/tutorhall/tutorhall/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	subjectController *controllers.SubjectController,
	tutorController *controllers.TutorController,
	studentController *controllers.StudentController,
	classController *controllers.ClassController,
	programController *controllers.ProgramController,
	scheduleController *controllers.ScheduleController,
	exportController *controllers.ExportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", authController.Logout)
	authenticated.GET("/auth/profile", authController.GetProfile)

	// Admin-only group: record and schedule mutations. Admin rights are
	// re-checked against the database, not just the token claims.
	adminOnly := authenticated.Group("")
	adminOnly.Use(authMiddleware.ActiveAccountRequired(), authMiddleware.RoleRequired(string(models.RoleAdmin)))

	// Subject routes
	subjects := authenticated.Group("/subjects")
	{
		subjects.GET("", subjectController.GetAllSubjects)
		subjects.GET("/:id", subjectController.GetSubjectByID)
	}
	subjectsAdmin := adminOnly.Group("/subjects")
	{
		subjectsAdmin.POST("", subjectController.CreateSubject)
		subjectsAdmin.PUT("/:id", subjectController.UpdateSubject)
		subjectsAdmin.DELETE("/:id", subjectController.DeleteSubject)
	}

	// Tutor routes
	tutors := authenticated.Group("/tutors")
	{
		tutors.GET("", tutorController.GetAllTutors)
		tutors.GET("/:id", tutorController.GetTutorByID)
	}
	tutorsAdmin := adminOnly.Group("/tutors")
	{
		tutorsAdmin.POST("", tutorController.CreateTutor)
		tutorsAdmin.PUT("/:id", tutorController.UpdateTutor)
		tutorsAdmin.DELETE("/:id", tutorController.DeleteTutor)
	}

	// Student routes
	students := authenticated.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
	}
	studentsAdmin := adminOnly.Group("/students")
	{
		studentsAdmin.POST("", studentController.CreateStudent)
		studentsAdmin.PUT("/:id", studentController.UpdateStudent)
		studentsAdmin.DELETE("/:id", studentController.DeleteStudent)
	}

	// Class routes
	classes := authenticated.Group("/classes")
	{
		classes.GET("", classController.GetAllClasses)
		classes.GET("/:id", classController.GetClassByID)
	}
	classesAdmin := adminOnly.Group("/classes")
	{
		classesAdmin.POST("", classController.CreateClass)
		classesAdmin.PUT("/:id", classController.UpdateClass)
		classesAdmin.DELETE("/:id", classController.DeleteClass)
	}

	// Program and timetable routes
	programs := authenticated.Group("/programs")
	{
		programs.GET("", programController.GetAllPrograms)
		programs.GET("/:id", programController.GetProgramByID)
		programs.GET("/:id/items", programController.GetProgramItems)
		programs.GET("/:id/timetable", scheduleController.GetTimetable)
		programs.GET("/:id/timetable/export", exportController.ExportTimetable)
	}
	programsAdmin := adminOnly.Group("/programs")
	{
		programsAdmin.POST("", programController.CreateProgram)
		programsAdmin.PUT("/:id", programController.UpdateProgram)
		programsAdmin.DELETE("/:id", programController.DeleteProgram)
		programsAdmin.POST("/:id/items", programController.CreateProgramItem)
	}

	// Weekly slot routes addressed by item id
	programItemsAdmin := adminOnly.Group("/program-items")
	{
		programItemsAdmin.PUT("/:id", programController.UpdateProgramItem)
		programItemsAdmin.DELETE("/:id", programController.DeleteProgramItem)

		// Single-occurrence edits
		programItemsAdmin.POST("/:id/occurrences/retime", scheduleController.RetimeOccurrence)
		programItemsAdmin.POST("/:id/occurrences/relocate", scheduleController.RelocateOccurrence)
		programItemsAdmin.POST("/:id/occurrences/cancel", scheduleController.CancelOccurrence)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
