package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superplace/growth-report-api/internal/aggregator"
	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
)

type studentReaderStub struct {
	student *models.Student
	err     error
}

func (s studentReaderStub) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.student, nil
}

type attendanceStub struct {
	summary *models.AttendanceSummary
	err     error
	calls   int
}

func (s *attendanceStub) Summarize(ctx context.Context, studentID string) (*models.AttendanceSummary, error) {
	s.calls++
	return s.summary, s.err
}

type aiActivityStub struct {
	summary *models.AIActivitySummary
	err     error
	calls   int
}

func (s *aiActivityStub) Summarize(ctx context.Context, studentID string) (*models.AIActivitySummary, error) {
	s.calls++
	return s.summary, s.err
}

type conceptStub struct {
	summary *models.ConceptSummary
	err     error
	calls   int
}

func (s *conceptStub) Summarize(ctx context.Context, studentID string) (*models.ConceptSummary, error) {
	s.calls++
	return s.summary, s.err
}

type homeworkStub struct {
	summary *models.HomeworkSummary
	err     error
	calls   int
}

func (s *homeworkStub) Summarize(ctx context.Context, studentID string) (*models.HomeworkSummary, error) {
	s.calls++
	return s.summary, s.err
}

func allVisible() models.VisibilityOptions {
	return models.VisibilityOptions{
		ShowBasicInfo:  true,
		ShowAttendance: true,
		ShowAIActivity: true,
		ShowConcepts:   true,
		ShowHomework:   true,
	}
}

func testStudent() *models.Student {
	academy := "Superplace Study"
	return &models.Student{ID: "stu-1", Name: "Kim Minjun", Email: "minjun@example.com", AcademyName: &academy}
}

func newTestAssembler(students studentReaderStub, att *attendanceStub, ai *aiActivityStub, con *conceptStub, hw *homeworkStub) *AssemblerService {
	return NewAssemblerService(students, att, ai, con, hw, time.Second, nil)
}

func TestAssembleAllSections(t *testing.T) {
	att := &attendanceStub{summary: &models.AttendanceSummary{Total: 20, Present: 19, AttendanceRate: 95}}
	ai := &aiActivityStub{summary: &models.AIActivitySummary{TotalChats: 127}}
	con := &conceptStub{summary: &models.ConceptSummary{Summary: "solid"}}
	hw := &homeworkStub{summary: &models.HomeworkSummary{TotalAssignments: 40, Completed: 36, AverageScore: 88}}
	svc := newTestAssembler(studentReaderStub{student: testStudent()}, att, ai, con, hw)

	report, err := svc.Assemble(context.Background(), "stu-1", allVisible(), "March Report")
	require.NoError(t, err)
	assert.Equal(t, "Kim Minjun", report.StudentName)
	assert.NotNil(t, report.BasicInfo)
	assert.NotNil(t, report.Attendance)
	assert.NotNil(t, report.AIActivity)
	assert.NotNil(t, report.Concepts)
	assert.NotNil(t, report.Homework)
	assert.Empty(t, report.Warnings)
}

func TestAssembleUnknownStudent(t *testing.T) {
	svc := newTestAssembler(studentReaderStub{err: sql.ErrNoRows}, &attendanceStub{}, &aiActivityStub{}, &conceptStub{}, &homeworkStub{})
	_, err := svc.Assemble(context.Background(), "ghost", allVisible(), "t")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssembleSkipsDisabledSections(t *testing.T) {
	att := &attendanceStub{summary: &models.AttendanceSummary{}}
	ai := &aiActivityStub{summary: &models.AIActivitySummary{}}
	con := &conceptStub{summary: &models.ConceptSummary{}}
	hw := &homeworkStub{summary: &models.HomeworkSummary{}}
	svc := newTestAssembler(studentReaderStub{student: testStudent()}, att, ai, con, hw)

	vis := models.VisibilityOptions{ShowAttendance: true}
	report, err := svc.Assemble(context.Background(), "stu-1", vis, "t")
	require.NoError(t, err)

	assert.Equal(t, 1, att.calls)
	assert.Zero(t, ai.calls)
	assert.Zero(t, con.calls)
	assert.Zero(t, hw.calls)
	assert.Nil(t, report.BasicInfo)
	assert.NotNil(t, report.Attendance)
	assert.Nil(t, report.Homework)
}

func TestAssembleIsolatesFailingSection(t *testing.T) {
	att := &attendanceStub{summary: &models.AttendanceSummary{Total: 10, Present: 10, AttendanceRate: 100}}
	ai := &aiActivityStub{summary: &models.AIActivitySummary{TotalChats: 3}}
	con := &conceptStub{err: aggregator.ErrUnavailable}
	hw := &homeworkStub{err: errors.New("timeout")}
	svc := newTestAssembler(studentReaderStub{student: testStudent()}, att, ai, con, hw)

	report, err := svc.Assemble(context.Background(), "stu-1", allVisible(), "t")
	require.NoError(t, err)
	assert.NotNil(t, report.Attendance)
	assert.NotNil(t, report.AIActivity)
	assert.Nil(t, report.Concepts)
	assert.Nil(t, report.Homework)
	assert.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings, "concepts section unavailable")
	assert.Contains(t, report.Warnings, "homework section unavailable")
}

// slowHomeworkStub never answers; it only returns once its context is
// cancelled.
type slowHomeworkStub struct{}

func (s *slowHomeworkStub) Summarize(ctx context.Context, studentID string) (*models.HomeworkSummary, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAssembleBoundsSlowSectionByTimeout(t *testing.T) {
	att := &attendanceStub{summary: &models.AttendanceSummary{Total: 10, Present: 10, AttendanceRate: 100}}
	ai := &aiActivityStub{summary: &models.AIActivitySummary{TotalChats: 3}}
	con := &conceptStub{summary: &models.ConceptSummary{Summary: "solid"}}
	svc := NewAssemblerService(studentReaderStub{student: testStudent()}, att, ai, con, &slowHomeworkStub{}, 30*time.Millisecond, nil)

	start := time.Now()
	report, err := svc.Assemble(context.Background(), "stu-1", allVisible(), "t")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.NotNil(t, report.Attendance)
	assert.NotNil(t, report.AIActivity)
	assert.NotNil(t, report.Concepts)
	assert.Nil(t, report.Homework)
	assert.Contains(t, report.Warnings, "homework section unavailable")
}

func TestAssembleBuildsVariableMap(t *testing.T) {
	att := &attendanceStub{summary: &models.AttendanceSummary{Total: 20, Present: 19, Late: 1, Absent: 0, AttendanceRate: 95}}
	ai := &aiActivityStub{summary: &models.AIActivitySummary{TotalChats: 12, Analysis: &models.AIAnalysis{Summary: "curious"}}}
	con := &conceptStub{summary: &models.ConceptSummary{Summary: "fractions wobbly"}}
	hw := &homeworkStub{summary: &models.HomeworkSummary{TotalAssignments: 40, Completed: 36, AverageScore: 88.5}}
	svc := newTestAssembler(studentReaderStub{student: testStudent()}, att, ai, con, hw)

	report, err := svc.Assemble(context.Background(), "stu-1", allVisible(), "March Report")
	require.NoError(t, err)

	vars := report.Variables
	assert.Equal(t, "March Report", vars["title"])
	assert.Equal(t, "Kim Minjun", vars["studentName"])
	assert.Equal(t, "Superplace Study", vars["academyName"])
	assert.Equal(t, "95", vars["attendanceRate"])
	assert.Equal(t, "20", vars["totalDays"])
	assert.Equal(t, "12", vars["aiChatCount"])
	assert.Equal(t, "curious", vars["aiSummary"])
	assert.Equal(t, "fractions wobbly", vars["conceptSummary"])
	assert.Equal(t, "90", vars["homeworkRate"])
	assert.Equal(t, "88.5", vars["avgScore"])
}

func TestAssembleOmittedSectionLeavesVariablesAbsent(t *testing.T) {
	att := &attendanceStub{err: aggregator.ErrUnavailable}
	svc := newTestAssembler(studentReaderStub{student: testStudent()}, att, &aiActivityStub{summary: &models.AIActivitySummary{}}, &conceptStub{summary: &models.ConceptSummary{}}, &homeworkStub{summary: &models.HomeworkSummary{}})

	report, err := svc.Assemble(context.Background(), "stu-1", allVisible(), "t")
	require.NoError(t, err)
	_, present := report.Variables["attendanceRate"]
	assert.False(t, present)
}
