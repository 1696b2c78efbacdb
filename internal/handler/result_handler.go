package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kadpoly-ict/ards-api/internal/models"
	"github.com/kadpoly-ict/ards-api/internal/service"
	appErrors "github.com/kadpoly-ict/ards-api/pkg/errors"
	"github.com/kadpoly-ict/ards-api/pkg/response"
)

// ResultHandler exposes result register endpoints.
type ResultHandler struct {
	results *service.ResultService
	exports *service.ExportService
}

// NewResultHandler constructs handler.
func NewResultHandler(results *service.ResultService, exports *service.ExportService) *ResultHandler {
	return &ResultHandler{results: results, exports: exports}
}

// List godoc
// @Summary List result register entries
// @Tags Results
// @Produce json
// @Param search query string false "Match student name, email, regno or course code"
// @Param studentId query string false "Filter by student"
// @Param status query string false "Filter by lifecycle status"
// @Success 200 {object} response.Envelope
// @Router /results [get]
func (h *ResultHandler) List(c *gin.Context) {
	filter := models.ResultFilter{
		Search:    c.Query("search"),
		StudentID: c.Query("studentId"),
		Status:    models.ResultStatus(c.Query("status")),
		Page:      queryInt(c, "page"),
		PageSize:  queryInt(c, "pageSize"),
	}
	rows, pagination, err := h.results.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}

// Create godoc
// @Summary Record a new pending result
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body service.CreateResultRequest true "Result payload"
// @Success 201 {object} response.Envelope
// @Router /results [post]
func (h *ResultHandler) Create(c *gin.Context) {
	var req service.CreateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.results.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Delete godoc
// @Summary Remove a result register entry
// @Tags Results
// @Param id path string true "Result ID"
// @Success 204
// @Router /results/{id} [delete]
func (h *ResultHandler) Delete(c *gin.Context) {
	if err := h.results.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Requeue godoc
// @Summary Put failed results back in the dispatch queue
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body service.RequeueRequest true "Result IDs"
// @Success 200 {object} response.Envelope
// @Router /results/requeue [post]
func (h *ResultHandler) Requeue(c *gin.Context) {
	var req service.RequeueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.Requeue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Download the result register as CSV or PDF
// @Tags Results
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /results/export [get]
func (h *ResultHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	filter := models.ResultFilter{
		Search:    c.Query("search"),
		StudentID: c.Query("studentId"),
		Status:    models.ResultStatus(c.Query("status")),
	}
	result, err := h.exports.Export(c.Request.Context(), format, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
