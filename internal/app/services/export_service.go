package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/repositories"
	"github.com/tutorhall/tutorhall/internal/app/schedule"
)

// ExportService renders a materialized timetable as a downloadable file.
// Both formats are generated from the same occurrence list the timetable
// endpoint serves, so an export always matches what the screen shows.
type ExportService interface {
	// ExportICS renders the window as an iCalendar file
	ExportICS(ctx context.Context, programID int64, window schedule.DateRange) (*bytes.Buffer, string, error)
	// ExportXLSX renders the window as an Excel workbook
	ExportXLSX(ctx context.Context, programID int64, window schedule.DateRange) (*bytes.Buffer, string, error)
}

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	scheduleService ScheduleService
	programRepo     *repositories.ProgramRepository
	classRepo       *repositories.ClassRepository
	logger          zerolog.Logger
}

// NewExportService creates a new export service instance
func NewExportService(
	scheduleService ScheduleService,
	programRepo *repositories.ProgramRepository,
	classRepo *repositories.ClassRepository,
	logger zerolog.Logger,
) ExportService {
	return &exportServiceImpl{
		scheduleService: scheduleService,
		programRepo:     programRepo,
		classRepo:       classRepo,
		logger:          logger,
	}
}

// load materializes the window and resolves the classes behind it
func (s *exportServiceImpl) load(ctx context.Context, programID int64, window schedule.DateRange) (*models.Program, []schedule.Occurrence, map[int64]*models.Class, error) {
	program, err := s.programRepo.GetProgramByID(ctx, programID)
	if err != nil {
		return nil, nil, nil, err
	}

	occurrences, err := s.scheduleService.Timetable(ctx, programID, window)
	if err != nil {
		return nil, nil, nil, err
	}

	classIDs := make([]int64, 0, len(occurrences))
	seen := make(map[int64]bool)
	for _, occ := range occurrences {
		if !seen[occ.ClassID] {
			seen[occ.ClassID] = true
			classIDs = append(classIDs, occ.ClassID)
		}
	}
	classes, err := s.classRepo.GetByIDs(ctx, classIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading classes for export: %w", err)
	}

	return program, occurrences, classes, nil
}

// ExportICS renders the materialized window as an iCalendar file
func (s *exportServiceImpl) ExportICS(ctx context.Context, programID int64, window schedule.DateRange) (*bytes.Buffer, string, error) {
	program, occurrences, classes, err := s.load(ctx, programID, window)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TutorHall//Timetable//EN")
	cal.SetName(program.Name)

	for _, occ := range occurrences {
		event := cal.AddEvent(fmt.Sprintf("%s@tutorhall", occ.Key()))
		event.SetStartAt(occ.Start)
		event.SetEndAt(occ.End)
		event.SetSummary(occurrenceSummary(occ, classes))
		if occ.OverrideID != nil {
			event.SetDescription("Rescheduled from the weekly plan")
		}
		if class, ok := classes[occ.ClassID]; ok && class.Tutor != nil {
			event.SetOrganizer(class.Tutor.Email, ics.WithCN(class.Tutor.FirstName+" "+class.Tutor.LastName))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s_%s_%s.ics",
		sanitizeFilename(program.Name), schedule.FormatDate(window.From), schedule.FormatDate(window.To))
	return buf, filename, nil
}

// ExportXLSX renders the materialized window as an Excel workbook
func (s *exportServiceImpl) ExportXLSX(ctx context.Context, programID int64, window schedule.DateRange) (*bytes.Buffer, string, error) {
	program, occurrences, classes, err := s.load(ctx, programID, window)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Timetable"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "D", 8)
	f.SetColWidth(sheet, "E", "G", 22)
	f.SetColWidth(sheet, "H", "H", 8)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s (%s to %s)",
		program.Name, schedule.FormatDate(window.From), schedule.FormatDate(window.To)))
	f.MergeCell(sheet, "A1", "H1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Date", "Day", "Start", "End", "Class", "Subject", "Tutor", "Edited"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"2", h)
		f.SetCellStyle(sheet, col+"2", col+"2", headerStyle)
	}

	row := 3
	for _, occ := range occurrences {
		className, subjectName, tutorName := "", "", ""
		if class, ok := classes[occ.ClassID]; ok {
			className = class.Name
			if class.Subject != nil {
				subjectName = class.Subject.Name
			}
			if class.Tutor != nil {
				tutorName = class.Tutor.FirstName + " " + class.Tutor.LastName
			}
		}

		edited := ""
		if occ.OverrideID != nil {
			edited = "yes"
		}

		values := []interface{}{
			schedule.FormatDate(occ.Date),
			occ.Date.Weekday().String(),
			occ.Start.Format(schedule.ClockLayout),
			occ.End.Format(schedule.ClockLayout),
			className,
			subjectName,
			tutorName,
			edited,
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error().Err(err).Int64("programID", programID).Msg("Error writing timetable workbook")
		return nil, "", fmt.Errorf("writing workbook: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.xlsx",
		sanitizeFilename(program.Name), schedule.FormatDate(window.From), schedule.FormatDate(window.To))
	return buf, filename, nil
}

// occurrenceSummary builds the event title from the class behind the occurrence
func occurrenceSummary(occ schedule.Occurrence, classes map[int64]*models.Class) string {
	if class, ok := classes[occ.ClassID]; ok {
		if class.Subject != nil {
			return fmt.Sprintf("%s (%s)", class.Name, class.Subject.Name)
		}
		return class.Name
	}
	return fmt.Sprintf("Class %d", occ.ClassID)
}

// sanitizeFilename replaces characters that are unsafe in download filenames
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(name)
}
