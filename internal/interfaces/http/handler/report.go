package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/hamsefx10-lgtm/revlo-backend/internal/application/report"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/report"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// ReportHandler handles financial statement API endpoints
type ReportHandler struct {
	BaseHandler
	statementService *reportapp.StatementService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(statementService *reportapp.StatementService) *ReportHandler {
	return &ReportHandler{statementService: statementService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.BalanceSheet)
		reports.GET("/profit-loss", h.ProfitLoss)
		reports.GET("/ledger", h.Ledger)
		reports.GET("/receivables-payables", h.ReceivablesPayables)
	}
}

// ===================== Request DTOs =====================

// BalanceSheetRequest selects the statement cutoff date
type BalanceSheetRequest struct {
	AsOf string `form:"as_of" example:"2026-01-31"`
}

// ProfitLossRequest selects the reporting period, either by preset or
// by explicit dates
type ProfitLossRequest struct {
	Preset    string `form:"preset" example:"THIS_MONTH"`
	StartDate string `form:"start_date" example:"2026-01-01"`
	EndDate   string `form:"end_date" example:"2026-01-31"`
}

// LedgerRequest selects the drill-down dimension and period
type LedgerRequest struct {
	Dimension   string `form:"dimension" binding:"required" example:"ACCOUNT"`
	ReferenceID string `form:"reference_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Category    string `form:"category" example:"salary"`
	StartDate   string `form:"start_date" binding:"required" example:"2026-01-01"`
	EndDate     string `form:"end_date" binding:"required" example:"2026-01-31"`
}

// parseDate accepts either a plain date or a full RFC 3339 timestamp
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseRange builds an inclusive reporting period from request dates.
// The end date is pushed to end of day so same-day activity is counted.
func parseRange(startDate, endDate string) (report.DateRange, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return report.DateRange{}, shared.NewDomainError("INVALID_DATE", "start_date must be a date (YYYY-MM-DD)")
	}
	end, err := parseDate(endDate)
	if err != nil {
		return report.DateRange{}, shared.NewDomainError("INVALID_DATE", "end_date must be a date (YYYY-MM-DD)")
	}
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return report.NewDateRange(start, end)
}

// ===================== Endpoints =====================

// BalanceSheet returns the point-in-time balance sheet
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req BalanceSheetRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	asOf := time.Now()
	if req.AsOf != "" {
		parsed, err := parseDate(req.AsOf)
		if err != nil {
			h.BadRequest(c, "as_of must be a date (YYYY-MM-DD)")
			return
		}
		// Push the cutoff to end of day so same-day activity is included
		asOf = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	resp, err := h.statementService.GetBalanceSheet(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ProfitLoss returns the profit and loss statement for a period. A
// preset takes priority over explicit dates.
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req ProfitLossRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	if req.Preset != "" {
		resp, err := h.statementService.GetProfitAndLossPreset(
			c.Request.Context(), tenantID, report.RangePreset(req.Preset), time.Now())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	if req.StartDate == "" || req.EndDate == "" {
		h.BadRequest(c, "Either preset or start_date and end_date are required")
		return
	}

	period, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.statementService.GetProfitAndLoss(c.Request.Context(), tenantID, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Ledger returns a drill-down ledger for one aggregate line
func (h *ReportHandler) Ledger(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req LedgerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	period, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	dimension := report.LedgerDimension(req.Dimension)
	if dimension == report.DimensionCategory {
		if req.Category == "" {
			h.BadRequest(c, "category is required for the CATEGORY dimension")
			return
		}
		resp, err := h.statementService.GetCategoryLedger(c.Request.Context(), tenantID, req.Category, period)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	referenceID := uuid.Nil
	if req.ReferenceID != "" {
		referenceID, err = uuid.Parse(req.ReferenceID)
		if err != nil {
			h.BadRequest(c, "reference_id must be a UUID")
			return
		}
	}

	resp, err := h.statementService.GetLedger(c.Request.Context(), tenantID, dimension, referenceID, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReceivablesPayables returns outstanding customer and vendor balances
func (h *ReportHandler) ReceivablesPayables(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "as_of must be a date (YYYY-MM-DD)")
			return
		}
		asOf = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	resp, err := h.statementService.GetReceivablesPayables(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
