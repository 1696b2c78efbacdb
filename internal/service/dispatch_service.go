package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kadpoly-ict/ards-api/internal/models"
	appErrors "github.com/kadpoly-ict/ards-api/pkg/errors"
)

type resultStore interface {
	ListPending(ctx context.Context) ([]models.PendingResult, error)
	ListPendingForStudent(ctx context.Context, studentID string) ([]models.PendingResult, error)
	UpdateStatus(ctx context.Context, ids []string, status models.ResultStatus, sentAt *time.Time) error
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type resultMailer interface {
	Send(ctx context.Context, payload models.ResultEmailPayload) error
}

type dispatchMetrics interface {
	RecordDispatchBatch(outcome string, resultCount int)
}

// DispatchServiceConfig tunes dispatch behaviour.
type DispatchServiceConfig struct {
	UpdateRetries int
}

// DispatchService drives pending result records through delivery attempts,
// one consolidated notification per student. It keeps no state between calls.
type DispatchService struct {
	store    resultStore
	students studentReader
	mailer   resultMailer
	metrics  dispatchMetrics
	logger   *zap.Logger
	now      func() time.Time
	cfg      DispatchServiceConfig
}

// NewDispatchService constructs a DispatchService.
func NewDispatchService(store resultStore, students studentReader, mailer resultMailer, metrics dispatchMetrics, logger *zap.Logger, cfg DispatchServiceConfig) *DispatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UpdateRetries < 0 {
		cfg.UpdateRetries = 0
	}
	return &DispatchService{
		store:    store,
		students: students,
		mailer:   mailer,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
	}
}

// DispatchForStudent delivers one student's pending results as a single
// consolidated notification. A student with nothing pending is a no-op, not
// an error: no send is attempted and no record is touched.
func (s *DispatchService) DispatchForStudent(ctx context.Context, studentID string) (*models.DispatchOutcome, error) {
	batch, err := s.store.ListPendingForStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending results")
	}
	if len(batch) == 0 {
		return &models.DispatchOutcome{StudentID: studentID, Status: models.DispatchNothingToSend}, nil
	}

	delivered, err := s.dispatchBatch(ctx, studentID, batch)
	if err != nil {
		return nil, err
	}
	outcome := &models.DispatchOutcome{StudentID: studentID, Status: models.DispatchFailed, ResultCount: len(batch)}
	if delivered {
		outcome.Status = models.DispatchSent
	}
	return outcome, nil
}

// DispatchAll delivers every pending result, grouped per student in the order
// students first appear in the pending list. Each group completes fully before
// the next begins, and one group's failure never stops the run. The summary
// counts student groups, not individual records.
func (s *DispatchService) DispatchAll(ctx context.Context) (*models.DispatchSummary, error) {
	pending, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending results")
	}

	var order []string
	groups := make(map[string][]models.PendingResult)
	for _, record := range pending {
		if _, seen := groups[record.StudentID]; !seen {
			order = append(order, record.StudentID)
		}
		groups[record.StudentID] = append(groups[record.StudentID], record)
	}

	summary := &models.DispatchSummary{}
	for _, studentID := range order {
		delivered, err := s.dispatchBatch(ctx, studentID, groups[studentID])
		if err != nil {
			// Pre-send persistence failure: the batch never reached the
			// channel, its records stay pending for the next run.
			s.logger.Warn("skipping student batch",
				zap.String("student_id", studentID),
				zap.Error(err))
			summary.FailCount++
			continue
		}
		if delivered {
			summary.SuccessCount++
		} else {
			summary.FailCount++
		}
	}

	s.logger.Info("dispatch run complete",
		zap.Int("students", len(order)),
		zap.Int("success", summary.SuccessCount),
		zap.Int("failed", summary.FailCount))
	return summary, nil
}

// dispatchBatch attempts delivery of one student group. The returned error is
// non-nil only when the payload could not even be assembled; a delivery
// rejection is consumed here, marks the whole batch failed and returns false.
func (s *DispatchService) dispatchBatch(ctx context.Context, studentID string, batch []models.PendingResult) (bool, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student profile")
	}

	payload := buildEmailPayload(student, batch)

	if err := s.mailer.Send(ctx, payload); err != nil {
		s.logger.Warn("batch delivery failed",
			zap.String("student_id", studentID),
			zap.Strings("result_ids", payload.ResultIDs),
			zap.Error(err))
		s.markFailed(ctx, payload.ResultIDs)
		s.recordBatch("failed", len(batch))
		return false, nil
	}

	s.markSent(ctx, payload.ResultIDs)
	s.recordBatch("sent", len(batch))
	return true, nil
}

func (s *DispatchService) markSent(ctx context.Context, ids []string) {
	sentAt := s.now().UTC()
	err := s.store.UpdateStatus(ctx, ids, models.ResultStatusSent, &sentAt)
	for attempt := 0; err != nil && attempt < s.cfg.UpdateRetries; attempt++ {
		err = s.store.UpdateStatus(ctx, ids, models.ResultStatusSent, &sentAt)
	}
	if err != nil {
		// The student already has the email but the records are still
		// pending; a later run would deliver them again. Surface loudly so
		// the inconsistency can be reconciled by hand.
		s.logger.Error("delivered batch could not be marked sent",
			zap.Strings("result_ids", ids),
			zap.Error(err))
	}
}

func (s *DispatchService) markFailed(ctx context.Context, ids []string) {
	if err := s.store.UpdateStatus(ctx, ids, models.ResultStatusFailed, nil); err != nil {
		s.logger.Warn("failed batch could not be marked failed",
			zap.Strings("result_ids", ids),
			zap.Error(err))
	}
}

func (s *DispatchService) recordBatch(outcome string, resultCount int) {
	if s.metrics != nil {
		s.metrics.RecordDispatchBatch(outcome, resultCount)
	}
}

func buildEmailPayload(student *models.Student, batch []models.PendingResult) models.ResultEmailPayload {
	rows := make([]models.CourseResult, 0, len(batch))
	ids := make([]string, 0, len(batch))
	for _, record := range batch {
		row := models.CourseResult{
			CourseCode: record.CourseCode,
			CourseName: record.CourseName,
			Score:      record.Score,
		}
		if record.Grade != nil {
			row.Grade = *record.Grade
		}
		rows = append(rows, row)
		ids = append(ids, record.ID)
	}

	aggregate := ComputeBatchAggregate(rows)

	payload := models.ResultEmailPayload{
		StudentName:  student.FullName,
		StudentEmail: student.Email,
		Regno:        student.Regno,
		Department:   student.Department,
		Results:      rows,
		GPA:          aggregate.GPA,
		Remarks:      aggregate.Remark,
		ResultIDs:    ids,
	}
	if student.Level != nil {
		payload.Level = *student.Level
	}
	if student.Semester != nil {
		payload.Semester = *student.Semester
	}
	return payload
}
