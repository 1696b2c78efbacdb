package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadpoly-ict/ards-api/internal/models"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "regno", "full_name", "email", "department", "level", "semester", "created_at", "updated_at"})
}

func TestStudentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := studentRows().
		AddRow("stu-1", "KPT/CS/21/001", "Amina Bello", "amina@school.test", "Computer Science", "200", "First", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE id = $1")).
		WithArgs("stu-1").
		WillReturnRows(rows)

	student, err := repo.FindByID(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, "KPT/CS/21/001", student.Regno)
	require.NotNil(t, student.Level)
	assert.Equal(t, "200", *student.Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE 1=1 AND (full_name ILIKE $1 OR email ILIKE $1 OR regno ILIKE $1)")).
		WithArgs("%amina%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := studentRows().
		AddRow("stu-1", "KPT/CS/21/001", "Amina Bello", "amina@school.test", "Computer Science", nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY full_name ASC LIMIT 20 OFFSET 0")).
		WithArgs("%amina%").
		WillReturnRows(rows)

	students, total, err := repo.List(context.Background(), models.StudentFilter{Search: "amina"})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, total)
	assert.Nil(t, students[0].Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}
