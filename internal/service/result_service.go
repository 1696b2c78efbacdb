package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kadpoly-ict/ards-api/internal/models"
	appErrors "github.com/kadpoly-ict/ards-api/pkg/errors"
)

type resultWriter interface {
	Create(ctx context.Context, record *models.ResultRecord) error
	List(ctx context.Context, filter models.ResultFilter) ([]models.ResultDetail, int, error)
	Delete(ctx context.Context, id string) error
	Requeue(ctx context.Context, ids []string) (int, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// CreateResultRequest represents a single result entry payload.
type CreateResultRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
	Score     string `json:"score" validate:"required"`
	Grade     string `json:"grade"`
	Remarks   string `json:"remarks"`
}

// RequeueRequest lists failed records to put back in the dispatch queue.
type RequeueRequest struct {
	ResultIDs []string `json:"result_ids" validate:"required,min=1"`
}

// RequeueResponse reports how many records were re-queued.
type RequeueResponse struct {
	RequeuedCount int `json:"requeued_count"`
}

// ResultService handles result register entry and maintenance.
type ResultService struct {
	results   resultWriter
	students  studentReader
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResultService constructs a ResultService.
func NewResultService(results resultWriter, students studentReader, courses courseReader, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{results: results, students: students, courses: courses, validator: validate, logger: logger}
}

// Create records a new pending result after checking its references.
func (s *ResultService) Create(ctx context.Context, req CreateResultRequest) (*models.ResultRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	record := &models.ResultRecord{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Score:     req.Score,
		Status:    models.ResultStatusPending,
	}
	if req.Grade != "" {
		grade := req.Grade
		record.Grade = &grade
	}
	if req.Remarks != "" {
		remarks := req.Remarks
		record.Remarks = &remarks
	}
	if err := s.results.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create result")
	}
	return record, nil
}

// List returns register rows matching the filter.
func (s *ResultService) List(ctx context.Context, filter models.ResultFilter) ([]models.ResultDetail, *models.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}
	rows, total, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return rows, &models.Pagination{Page: page, PageSize: pageSize, Total: total}, nil
}

// Delete removes a result record from the register.
func (s *ResultService) Delete(ctx context.Context, id string) error {
	if err := s.results.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete result")
	}
	return nil
}

// Requeue puts failed records back in pending state. Records in any other
// state are left untouched; the count reflects only actual transitions.
func (s *ResultService) Requeue(ctx context.Context, req RequeueRequest) (*RequeueResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid requeue payload")
	}
	count, err := s.results.Requeue(ctx, req.ResultIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to requeue results")
	}
	s.logger.Info("results requeued", zap.Int("count", count))
	return &RequeueResponse{RequeuedCount: count}, nil
}
