package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

// ReportHandler serves the sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesReport aggregates the orders of a window
// @Summary Sales report
// @Description Window is start_date..end_date when both are set, else date, else today (UTC). Dates are YYYY-MM-DD or RFC 3339.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param date query string false "Single day"
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /sales-report [get]
func (h *ReportHandler) SalesReport(c *gin.Context) {
	var req request.ReportWindowRequest
	if !bindQuery(c, &req) {
		return
	}

	report, err := h.reportService.GetSalesReport(c.Request.Context(), windowQuery(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report retrieved successfully", report)
}

// OrdersList lists order summaries of a window, newest first
// @Summary Orders list
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end"
// @Param status query string false "all, completed or refunded"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /orders-list [get]
func (h *ReportHandler) OrdersList(c *gin.Context) {
	var req request.ReportWindowRequest
	if !bindQuery(c, &req) {
		return
	}

	orders, err := h.reportService.GetOrdersList(c.Request.Context(), windowQuery(&req), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", orders)
}

func windowQuery(req *request.ReportWindowRequest) service.WindowQuery {
	return service.WindowQuery{
		Date:      req.Date,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
}
