package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/hamsefx10-lgtm/revlo-backend/internal/application/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/interfaces/http/middleware"
)

// LedgerHandler handles ledger write API endpoints: transactions,
// expense documents and project payments
type LedgerHandler struct {
	BaseHandler
	ledgerService *financeapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *financeapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.PostTransaction)
		transactions.PUT("/:id", h.UpdateTransaction)
		transactions.POST("/:id/reverse", h.ReverseTransaction)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.PostExpense)
		expenses.POST("/:id/settle", h.SettleExpense)
		expenses.POST("/:id/reverse", h.ReverseExpense)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.PostPayment)
		payments.POST("/:id/reverse", h.ReversePayment)
	}
}

// bindJSON binds the request body, sending a 400 on failure
func (h *LedgerHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleBindingError(c, err)
		return false
	}
	return true
}

// pathID parses the :id path parameter, sending a 400 on failure
func (h *LedgerHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// PostTransaction writes a new ledger transaction and adjusts the
// touched account balances in the same unit of work
func (h *LedgerHandler) PostTransaction(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req financeapp.PostTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.ledgerService.PostTransaction(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateTransaction reverses a transaction and posts a replacement
func (h *LedgerHandler) UpdateTransaction(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req financeapp.PostTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.ledgerService.UpdateTransaction(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReverseTransaction soft-reverses a transaction and backs its effect
// out of the account balances
func (h *LedgerHandler) ReverseTransaction(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.ReverseTransaction(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PostExpense records an expense document, optionally settling it in
// the same unit of work
func (h *LedgerHandler) PostExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req financeapp.PostExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.ledgerService.PostExpense(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SettleExpense pays down an expense from an account
func (h *LedgerHandler) SettleExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req financeapp.SettleExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.ledgerService.SettleExpense(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ReverseExpense reverses an expense document and every settlement
// posted against it
func (h *LedgerHandler) ReverseExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.ReverseExpense(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PostPayment records a project payment with its companion income
// transaction
func (h *LedgerHandler) PostPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req financeapp.PostPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.ledgerService.PostPayment(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ReversePayment reverses a payment and its companion transaction
func (h *LedgerHandler) ReversePayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.ReversePayment(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
