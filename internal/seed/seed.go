package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/tutorhall/tutorhall/internal/app/models"
	appRepos "github.com/tutorhall/tutorhall/internal/app/repositories"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
	"github.com/tutorhall/tutorhall/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account and a couple of
// starter subjects if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	subjectRepo := appRepos.NewSubjectRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account, subjects)...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Default Admin User --- //
	_, err := userRepo.GetByEmail(ctx, "admin@tutorhall.com")
	switch {
	case err == nil:
		lgr.Info().Msg("Admin user already exists, skipping creation")
	case errors.Is(err, apperrors.ErrUserNotFound):
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, hashErr := auth.HashPassword("Admin123!")
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, hashErr)
			break
		}

		admin := &appModels.User{
			Email:     "admin@tutorhall.com",
			Password:  hashedPassword,
			FirstName: "System",
			LastName:  "Administrator",
			RoleType:  appModels.RoleAdmin,
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		if createErr := userRepo.Create(ctx, admin); createErr != nil {
			lgr.Error().Err(createErr).Msg("Error creating admin user")
			finalErr = errors.Join(finalErr, createErr)
		} else {
			lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
		}
	default:
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Starter Subjects --- //
	defaultSubjects := []*appModels.Subject{
		{Name: "Mathematics", Code: "MATH"},
		{Name: "Physics", Code: "PHYS"},
		{Name: "English", Code: "ENG"},
	}
	for _, subject := range defaultSubjects {
		err := subjectRepo.Create(ctx, subject)
		if err != nil && !errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
			lgr.Error().Err(err).Str("code", subject.Code).Msg("Error creating default subject")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr // Return collected errors, if any
}
