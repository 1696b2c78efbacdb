package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/kadpoly-ict/ards-api/internal/models"
	appErrors "github.com/kadpoly-ict/ards-api/pkg/errors"
)

// ResendMailer delivers consolidated result notifications through the Resend API.
type ResendMailer struct {
	client      *resend.Client
	from        string
	institution string
	logger      *zap.Logger
}

// NewResendMailer constructs a mailer bound to one sender address.
func NewResendMailer(apiKey, from, institution string, logger *zap.Logger) *ResendMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResendMailer{
		client:      resend.NewClient(apiKey),
		from:        from,
		institution: institution,
		logger:      logger,
	}
}

// Send renders and delivers one student's consolidated result email. The
// message either reaches the channel as a whole or fails as a whole.
func (m *ResendMailer) Send(ctx context.Context, payload models.ResultEmailPayload) error {
	html, err := RenderResultEmail(m.institution, payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrDeliveryFailed.Code, appErrors.ErrDeliveryFailed.Status, "failed to render result email")
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{payload.StudentEmail},
		Subject: Subject(payload),
		Html:    html,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.logger.Warn("result email delivery failed",
			zap.String("student_email", payload.StudentEmail),
			zap.Strings("result_ids", payload.ResultIDs),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrDeliveryFailed.Code, appErrors.ErrDeliveryFailed.Status,
			fmt.Sprintf("failed to deliver results to %s", payload.StudentEmail))
	}

	m.logger.Info("result email delivered",
		zap.String("message_id", sent.Id),
		zap.String("student_email", payload.StudentEmail),
		zap.Int("course_count", len(payload.Results)))
	return nil
}
