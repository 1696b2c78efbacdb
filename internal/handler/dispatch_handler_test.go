package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kadpoly-ict/ards-api/internal/models"
	appErrors "github.com/kadpoly-ict/ards-api/pkg/errors"
)

type responseEnvelope struct {
	Data       map[string]interface{} `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

type fakeDispatchSrv struct {
	outcome       *models.DispatchOutcome
	summary       *models.DispatchSummary
	err           error
	lastStudentID string
}

func (f *fakeDispatchSrv) DispatchForStudent(_ context.Context, studentID string) (*models.DispatchOutcome, error) {
	f.lastStudentID = studentID
	return f.outcome, f.err
}

func (f *fakeDispatchSrv) DispatchAll(context.Context) (*models.DispatchSummary, error) {
	return f.summary, f.err
}

func TestDispatchHandlerSendAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDispatchHandler(&fakeDispatchSrv{
		summary: &models.DispatchSummary{SuccessCount: 3, FailCount: 1},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/dispatch/send-all", nil)

	handler.SendAll(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, float64(3), envelope.Data["success_count"])
	assert.Equal(t, float64(1), envelope.Data["fail_count"])
}

func TestDispatchHandlerSendAllError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDispatchHandler(&fakeDispatchSrv{
		err: appErrors.Clone(appErrors.ErrInternal, "failed to list pending results"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/dispatch/send-all", nil)

	handler.SendAll(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.NotNil(t, envelope.Error)
}

func TestDispatchHandlerSendOne(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDispatchSrv{
		outcome: &models.DispatchOutcome{StudentID: "stu-1", Status: models.DispatchSent, ResultCount: 2},
	}
	handler := NewDispatchHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/dispatch/students/stu-1/send", nil)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}

	handler.SendOne(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stu-1", srv.lastStudentID)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "sent", envelope.Data["status"])
	assert.Equal(t, float64(2), envelope.Data["result_count"])
}
