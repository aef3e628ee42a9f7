package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tutorhall/tutorhall/docs" // Import generated swagger docs
	appControllers "github.com/tutorhall/tutorhall/internal/app/controllers"
	appMigrations "github.com/tutorhall/tutorhall/internal/app/migrations"
	appRepos "github.com/tutorhall/tutorhall/internal/app/repositories"
	appRoutes "github.com/tutorhall/tutorhall/internal/app/routes"
	appServices "github.com/tutorhall/tutorhall/internal/app/services"
	"github.com/tutorhall/tutorhall/internal/config"
	"github.com/tutorhall/tutorhall/internal/db"
	appMiddleware "github.com/tutorhall/tutorhall/internal/middleware"
	pkgAuth "github.com/tutorhall/tutorhall/internal/pkg/auth"
	"github.com/tutorhall/tutorhall/internal/pkg/helpers"
	"github.com/tutorhall/tutorhall/internal/pkg/logger"
	"github.com/tutorhall/tutorhall/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	SubjectService     *appServices.SubjectService
	TutorService       appServices.TutorService // Interface type
	StudentService     *appServices.StudentService
	ClassService       *appServices.ClassService
	ProgramService     appServices.ProgramService  // Interface type
	ScheduleService    appServices.ScheduleService // Interface type
	ExportService      appServices.ExportService   // Interface type
	AuthController     *appControllers.AuthController
	SubjectController  *appControllers.SubjectController
	TutorController    *appControllers.TutorController
	StudentController  *appControllers.StudentController
	ClassController    *appControllers.ClassController
	ProgramController  *appControllers.ProgramController
	ScheduleController *appControllers.ScheduleController
	ExportController   *appControllers.ExportController
	AuthMiddleware     *appMiddleware.AuthMiddleware // Pointer to middleware struct
	Repos              *appRepos.Repositories        // Include the main repo container
	JWTService         *pkgAuth.JWTService
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err // Return zero logger and the error
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create Default Data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)

	deps.SubjectService = appServices.NewSubjectService(deps.Repos.SubjectRepository)
	deps.TutorService = appServices.NewTutorService(deps.Repos.TutorRepository, deps.Repos.SubjectRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.ClassService = appServices.NewClassService(deps.Repos.ClassRepository, deps.Repos.SubjectRepository, deps.Repos.TutorRepository)
	deps.ProgramService = appServices.NewProgramService(deps.Repos.ProgramRepository, deps.Repos.ClassRepository)
	deps.ScheduleService = appServices.NewScheduleService(deps.Repos.ProgramRepository, deps.Repos.OverrideRepository)
	deps.ExportService = appServices.NewExportService(deps.ScheduleService, deps.Repos.ProgramRepository, deps.Repos.ClassRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.SubjectController = appControllers.NewSubjectController(deps.SubjectService)
	deps.TutorController = appControllers.NewTutorController(deps.TutorService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService)
	deps.ProgramController = appControllers.NewProgramController(deps.ProgramService)
	deps.ScheduleController = appControllers.NewScheduleController(deps.ScheduleService, deps.ClassService)
	deps.ExportController = appControllers.NewExportController(deps.ExportService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.SubjectController,
		deps.TutorController,
		deps.StudentController,
		deps.ClassController,
		deps.ProgramController,
		deps.ScheduleController,
		deps.ExportController,
		deps.AuthMiddleware, // Pass the middleware struct itself
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
