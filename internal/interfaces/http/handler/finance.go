package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lensflow/backend/internal/application/finance"
	"github.com/lensflow/backend/internal/infrastructure/auth"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// FinanceHandler exposes the expense, loan and advance ledgers. Every
// route requires branch head or above.
type FinanceHandler struct {
	BaseHandler
	expenseService      *finance.ExpenseService
	dailyExpenseService *finance.DailyExpenseService
	fixedExpenseService *finance.FixedExpenseService
	loanService         *finance.LoanService
	advanceService      *finance.AdvanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	expenseService *finance.ExpenseService,
	dailyExpenseService *finance.DailyExpenseService,
	fixedExpenseService *finance.FixedExpenseService,
	loanService *finance.LoanService,
	advanceService *finance.AdvanceService,
) *FinanceHandler {
	return &FinanceHandler{
		expenseService:      expenseService,
		dailyExpenseService: dailyExpenseService,
		fixedExpenseService: fixedExpenseService,
		loanService:         loanService,
		advanceService:      advanceService,
	}
}

// RegisterRoutes registers finance ledger routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	guard := middleware.RequireRole(auth.RoleBranchHead)

	expenses := rg.Group("/expenses", guard)
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.ListExpenses)
		expenses.GET("/:id", h.GetExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}

	daily := rg.Group("/daily-expenses", guard)
	{
		daily.POST("", h.CreateDailyExpense)
		daily.GET("", h.ListDailyExpenses)
		daily.DELETE("/:id", h.DeleteDailyExpense)
	}

	fixed := rg.Group("/fixed-expenses", guard)
	{
		fixed.POST("", h.CreateFixedExpense)
		fixed.GET("", h.ListFixedExpenses)
		fixed.POST("/:id/terminate", h.TerminateFixedExpense)
		fixed.DELETE("/:id", h.DeleteFixedExpense)
	}

	loans := rg.Group("/loans", guard)
	{
		loans.POST("", h.CreateLoan)
		loans.GET("", h.ListLoans)
		loans.GET("/:id", h.GetLoan)
		loans.POST("/:id/repay", h.RepayLoan)
		loans.POST("/:id/waive", h.WaiveLoan)
	}

	advances := rg.Group("/advances", guard)
	{
		advances.POST("", h.CreateAdvance)
		advances.GET("", h.ListAdvances)
		advances.POST("/:id/settle", h.SettleAdvance)
	}
}

// CreateExpense records an ad-hoc expense
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.expenseService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetExpense returns a single expense
func (h *FinanceHandler) GetExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	resp, err := h.expenseService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListExpenses returns ad-hoc expenses
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter finance.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	expenses, total, err := h.expenseService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// UpdateExpense modifies an expense entry
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req finance.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.expenseService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteExpense removes an expense entry
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateDailyExpense records a petty-cash entry
func (h *FinanceHandler) CreateDailyExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.CreateDailyExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.dailyExpenseService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListDailyExpenses returns petty-cash entries
func (h *FinanceHandler) ListDailyExpenses(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter finance.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	expenses, total, err := h.dailyExpenseService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// DeleteDailyExpense removes a petty-cash entry
func (h *FinanceHandler) DeleteDailyExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.dailyExpenseService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateFixedExpense registers a recurring monthly expense
func (h *FinanceHandler) CreateFixedExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.CreateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.fixedExpenseService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListFixedExpenses returns recurring expenses
func (h *FinanceHandler) ListFixedExpenses(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter finance.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	expenses, total, err := h.fixedExpenseService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// TerminateFixedExpense ends a recurring expense as of a given month
func (h *FinanceHandler) TerminateFixedExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req finance.TerminateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.fixedExpenseService.Terminate(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteFixedExpense removes a recurring expense
func (h *FinanceHandler) DeleteFixedExpense(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.fixedExpenseService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateLoan records a loan issued to a staff member
func (h *FinanceHandler) CreateLoan(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.loanService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetLoan returns a single loan
func (h *FinanceHandler) GetLoan(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid loan ID")
		return
	}

	resp, err := h.loanService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListLoans returns staff loans
func (h *FinanceHandler) ListLoans(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter finance.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	loans, total, err := h.loanService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, loans, total, filter.Page, filter.PageSize)
}

// RepayLoan records a repayment against a loan
func (h *FinanceHandler) RepayLoan(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid loan ID")
		return
	}

	var req finance.RepayLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.loanService.Repay(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// WaiveLoan forgives the outstanding balance
func (h *FinanceHandler) WaiveLoan(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid loan ID")
		return
	}

	resp, err := h.loanService.Waive(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateAdvance records a salary advance
func (h *FinanceHandler) CreateAdvance(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.CreateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.advanceService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListAdvances returns salary advances
func (h *FinanceHandler) ListAdvances(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter finance.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	scopeBranchFilter(c, &filter.BranchID)

	advances, total, err := h.advanceService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, advances, total, filter.Page, filter.PageSize)
}

// SettleAdvance marks an advance recovered against payroll
func (h *FinanceHandler) SettleAdvance(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advance ID")
		return
	}

	resp, err := h.advanceService.Settle(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
