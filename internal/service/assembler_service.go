package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/superplace/growth-report-api/internal/aggregator"
	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
)

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type attendanceSummarizer interface {
	Summarize(ctx context.Context, studentID string) (*models.AttendanceSummary, error)
}

type aiActivitySummarizer interface {
	Summarize(ctx context.Context, studentID string) (*models.AIActivitySummary, error)
}

type conceptSummarizer interface {
	Summarize(ctx context.Context, studentID string) (*models.ConceptSummary, error)
}

type homeworkSummarizer interface {
	Summarize(ctx context.Context, studentID string) (*models.HomeworkSummary, error)
}

// AssemblerService builds a complete report snapshot for one student by
// fanning out to the domain aggregators. Sections are fault-isolated: a
// failing domain is omitted with a warning, it never sinks the report.
type AssemblerService struct {
	students   studentReader
	attendance attendanceSummarizer
	aiActivity aiActivitySummarizer
	concepts   conceptSummarizer
	homework   homeworkSummarizer
	logger     *zap.Logger
	timeout    time.Duration
	now        func() time.Time
}

// NewAssemblerService wires the assembler. timeout bounds each domain
// aggregator call independently.
func NewAssemblerService(
	students studentReader,
	attendance attendanceSummarizer,
	aiActivity aiActivitySummarizer,
	concepts conceptSummarizer,
	homework homeworkSummarizer,
	timeout time.Duration,
	logger *zap.Logger,
) *AssemblerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &AssemblerService{
		students:   students,
		attendance: attendance,
		aiActivity: aiActivity,
		concepts:   concepts,
		homework:   homework,
		logger:     logger,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Assemble resolves the student and gathers every section enabled by
// vis. Disabled sections are never fetched. An unknown student is the
// one hard failure.
func (s *AssemblerService) Assemble(ctx context.Context, studentID string, vis models.VisibilityOptions, title string) (*models.AssembledReport, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, fmt.Errorf("find student: %w", err)
	}

	report := &models.AssembledReport{
		Title:       title,
		StudentName: student.Name,
		GeneratedAt: s.now().UTC(),
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		warnings []string
	)

	fetch := func(domain string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			if err := run(fetchCtx); err != nil {
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("%s section unavailable", domain))
				mu.Unlock()
				if !errors.Is(err, aggregator.ErrUnavailable) {
					s.logger.Warn("report section omitted",
						zap.String("domain", domain),
						zap.String("student_id", studentID),
						zap.Error(err))
				}
			}
		}()
	}

	if vis.ShowAttendance {
		fetch("attendance", func(fetchCtx context.Context) error {
			summary, err := s.attendance.Summarize(fetchCtx, studentID)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Attendance = summary
			mu.Unlock()
			return nil
		})
	}
	if vis.ShowAIActivity {
		fetch("ai activity", func(fetchCtx context.Context) error {
			summary, err := s.aiActivity.Summarize(fetchCtx, studentID)
			if err != nil {
				return err
			}
			mu.Lock()
			report.AIActivity = summary
			mu.Unlock()
			return nil
		})
	}
	if vis.ShowConcepts {
		fetch("concepts", func(fetchCtx context.Context) error {
			summary, err := s.concepts.Summarize(fetchCtx, studentID)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Concepts = summary
			mu.Unlock()
			return nil
		})
	}
	if vis.ShowHomework {
		fetch("homework", func(fetchCtx context.Context) error {
			summary, err := s.homework.Summarize(fetchCtx, studentID)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Homework = summary
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()

	if vis.ShowBasicInfo {
		report.BasicInfo = basicInfoOf(student)
	}
	report.Warnings = warnings
	report.Variables = s.buildVariables(report, student)
	return report, nil
}

func basicInfoOf(student *models.Student) *models.BasicInfo {
	return &models.BasicInfo{
		Name:     student.Name,
		Email:    student.Email,
		Academy:  student.AcademyName,
		JoinedAt: student.JoinedAt,
	}
}

// buildVariables flattens the assembled sections into the scalar map
// the substitution engine consumes. Only present sections contribute
// keys; rendering treats missing keys as empty strings.
func (s *AssemblerService) buildVariables(report *models.AssembledReport, student *models.Student) map[string]string {
	vars := map[string]string{
		"title":         report.Title,
		"studentName":   student.Name,
		"generatedDate": report.GeneratedAt.Format("2006-01-02"),
	}
	if report.BasicInfo != nil {
		vars["studentEmail"] = report.BasicInfo.Email
		if report.BasicInfo.Academy != nil {
			vars["academyName"] = *report.BasicInfo.Academy
		}
	}
	if att := report.Attendance; att != nil {
		vars["totalDays"] = strconv.Itoa(att.Total)
		vars["presentDays"] = strconv.Itoa(att.Present)
		vars["lateDays"] = strconv.Itoa(att.Late)
		vars["absentDays"] = strconv.Itoa(att.Absent)
		vars["attendanceRate"] = strconv.Itoa(att.AttendanceRate)
	}
	if ai := report.AIActivity; ai != nil {
		vars["aiChatCount"] = strconv.Itoa(ai.TotalChats)
		if ai.Analysis != nil {
			vars["aiSummary"] = ai.Analysis.Summary
		}
	}
	if con := report.Concepts; con != nil {
		vars["conceptSummary"] = con.Summary
	}
	if hw := report.Homework; hw != nil {
		vars["totalAssignments"] = strconv.Itoa(hw.TotalAssignments)
		vars["homeworkCompleted"] = strconv.Itoa(hw.Completed)
		vars["homeworkRate"] = strconv.Itoa(aggregator.Rate(hw.Completed, hw.TotalAssignments))
		vars["avgScore"] = strconv.FormatFloat(hw.AverageScore, 'f', -1, 64)
	}
	return vars
}
