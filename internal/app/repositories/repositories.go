package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	TokenRepository    *TokenRepository
	SubjectRepository  *SubjectRepository
	TutorRepository    *TutorRepository
	StudentRepository  *StudentRepository
	ClassRepository    *ClassRepository
	ProgramRepository  *ProgramRepository
	OverrideRepository *OverrideRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		TokenRepository:    NewTokenRepository(db),
		SubjectRepository:  NewSubjectRepository(db),
		TutorRepository:    NewTutorRepository(db),
		StudentRepository:  NewStudentRepository(db),
		ClassRepository:    NewClassRepository(db),
		ProgramRepository:  NewProgramRepository(db),
		OverrideRepository: NewOverrideRepository(db),
	}
}
