package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kadpoly-ict/ards-api/internal/models"
	appErrors "github.com/kadpoly-ict/ards-api/pkg/errors"
	"github.com/kadpoly-ict/ards-api/pkg/export"
)

const exportPageSize = 1000

type registerLister interface {
	List(ctx context.Context, filter models.ResultFilter) ([]models.ResultDetail, int, error)
}

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered result sheet.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the result register as a downloadable sheet.
type ExportService struct {
	results registerLister
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(results registerLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{results: results, logger: logger, now: time.Now}
}

// Export renders the register rows matching the filter into the requested format.
func (s *ExportService) Export(ctx context.Context, format ExportFormat, filter models.ResultFilter) (*ExportResult, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	filter.Page = 1
	filter.PageSize = exportPageSize
	rows, _, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load result register")
	}

	sheet := export.Sheet{
		Title:   "Result Register",
		Headers: []string{"Reg No", "Student", "Course Code", "Course Title", "Score", "Grade", "Status", "Sent At"},
	}
	for _, row := range rows {
		grade := ""
		if row.Grade != nil {
			grade = *row.Grade
		}
		sentAt := ""
		if row.SentAt != nil {
			sentAt = row.SentAt.UTC().Format(time.RFC3339)
		}
		sheet.Rows = append(sheet.Rows, []string{
			row.Regno, row.StudentName, row.CourseCode, row.CourseName, row.Score, grade, string(row.Status), sentAt,
		})
	}

	stamp := s.now().UTC().Format("20060102-150405")
	switch format {
	case ExportFormatPDF:
		data, err := export.RenderPDF(sheet)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("result-register-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		data, err := export.RenderCSV(sheet)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("result-register-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	}
}
