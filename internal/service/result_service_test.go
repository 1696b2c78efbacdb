package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadpoly-ict/ards-api/internal/models"
	appErrors "github.com/kadpoly-ict/ards-api/pkg/errors"
)

type mockResultWriter struct {
	created   []models.ResultRecord
	listRows  []models.ResultDetail
	listTotal int
	deleteErr error
	requeued  []string
}

func (m *mockResultWriter) Create(ctx context.Context, record *models.ResultRecord) error {
	m.created = append(m.created, *record)
	return nil
}

func (m *mockResultWriter) List(ctx context.Context, filter models.ResultFilter) ([]models.ResultDetail, int, error) {
	return m.listRows, m.listTotal, nil
}

func (m *mockResultWriter) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func (m *mockResultWriter) Requeue(ctx context.Context, ids []string) (int, error) {
	m.requeued = append(m.requeued, ids...)
	return len(ids), nil
}

type mockCourseReader struct {
	courses map[string]*models.Course
}

func (m *mockCourseReader) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if course, ok := m.courses[id]; ok {
		return course, nil
	}
	return nil, sql.ErrNoRows
}

func newResultFixture(writer *mockResultWriter) *ResultService {
	students := &mockStudentDir{students: map[string]*models.Student{"stu-1": testStudent("stu-1")}}
	courses := &mockCourseReader{courses: map[string]*models.Course{"crs-1": {ID: "crs-1", Code: "CSC101", Name: "Intro"}}}
	return NewResultService(writer, students, courses, nil, nil)
}

func TestResultServiceCreate(t *testing.T) {
	writer := &mockResultWriter{}
	svc := newResultFixture(writer)

	record, err := svc.Create(context.Background(), CreateResultRequest{
		StudentID: "stu-1",
		CourseID:  "crs-1",
		Score:     "85/100",
		Grade:     "A",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ResultStatusPending, record.Status)
	require.NotNil(t, record.Grade)
	assert.Equal(t, "A", *record.Grade)
	assert.Nil(t, record.Remarks)
	require.Len(t, writer.created, 1)
}

func TestResultServiceCreateValidation(t *testing.T) {
	svc := newResultFixture(&mockResultWriter{})

	_, err := svc.Create(context.Background(), CreateResultRequest{StudentID: "stu-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResultServiceCreateUnknownStudent(t *testing.T) {
	svc := newResultFixture(&mockResultWriter{})

	_, err := svc.Create(context.Background(), CreateResultRequest{
		StudentID: "ghost",
		CourseID:  "crs-1",
		Score:     "40/100",
	})
	require.Error(t, err)
}

func TestResultServiceCreateUnknownCourse(t *testing.T) {
	svc := newResultFixture(&mockResultWriter{})

	_, err := svc.Create(context.Background(), CreateResultRequest{
		StudentID: "stu-1",
		CourseID:  "ghost",
		Score:     "40/100",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestResultServiceListRejectsUnknownStatus(t *testing.T) {
	svc := newResultFixture(&mockResultWriter{})

	_, _, err := svc.List(context.Background(), models.ResultFilter{Status: "archived"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResultServiceListPagination(t *testing.T) {
	writer := &mockResultWriter{listTotal: 42}
	svc := newResultFixture(writer)

	_, pagination, err := svc.List(context.Background(), models.ResultFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 42, pagination.Total)
}

func TestResultServiceDeleteNotFound(t *testing.T) {
	writer := &mockResultWriter{deleteErr: sql.ErrNoRows}
	svc := newResultFixture(writer)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestResultServiceRequeue(t *testing.T) {
	writer := &mockResultWriter{}
	svc := newResultFixture(writer)

	result, err := svc.Requeue(context.Background(), RequeueRequest{ResultIDs: []string{"r1", "r2"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RequeuedCount)
	assert.Equal(t, []string{"r1", "r2"}, writer.requeued)
}

func TestResultServiceRequeueValidation(t *testing.T) {
	svc := newResultFixture(&mockResultWriter{})

	_, err := svc.Requeue(context.Background(), RequeueRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
