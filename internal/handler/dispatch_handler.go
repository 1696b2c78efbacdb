package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kadpoly-ict/ards-api/internal/models"
	"github.com/kadpoly-ict/ards-api/pkg/response"
)

type dispatchRunner interface {
	DispatchForStudent(ctx context.Context, studentID string) (*models.DispatchOutcome, error)
	DispatchAll(ctx context.Context) (*models.DispatchSummary, error)
}

// DispatchHandler exposes result dispatch endpoints.
type DispatchHandler struct {
	dispatch dispatchRunner
}

// NewDispatchHandler constructs handler.
func NewDispatchHandler(dispatch dispatchRunner) *DispatchHandler {
	return &DispatchHandler{dispatch: dispatch}
}

// SendAll godoc
// @Summary Dispatch every pending result, one consolidated email per student
// @Tags Dispatch
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dispatch/send-all [post]
func (h *DispatchHandler) SendAll(c *gin.Context) {
	summary, err := h.dispatch.DispatchAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// SendOne godoc
// @Summary Dispatch one student's pending results as a single email
// @Tags Dispatch
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /dispatch/students/{id}/send [post]
func (h *DispatchHandler) SendOne(c *gin.Context) {
	outcome, err := h.dispatch.DispatchForStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome, nil)
}
