package handler

import (
	"net/http"
	"strconv"

	"sportclub/internal/dto"
	"sportclub/internal/middleware"
	"sportclub/internal/service"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct{ svc service.FinanceService }

func NewFinanceHandler(svc service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

// CreateExpense godoc
// @Summary Records an expense; cash expenses hit today's register
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateExpenseRequest true "Expense data"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/expenses [post]
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateExpense(c.Request.Context(), middleware.OrgID(c), middleware.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListExpenses returns expenses filtered by date range and payment method.
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	resp, err := h.svc.ListExpenses(c.Request.Context(), middleware.OrgID(c), financeFilterFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePayment godoc
// @Summary Records an athlete's training fee payment
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreatePaymentRequest true "Payment data"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/payments [post]
func (h *FinanceHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePayment(c.Request.Context(), middleware.OrgID(c), middleware.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPayments returns training payments filtered by date range and method.
func (h *FinanceHandler) ListPayments(c *gin.Context) {
	resp, err := h.svc.ListPayments(c.Request.Context(), middleware.OrgID(c), financeFilterFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func financeFilterFromQuery(c *gin.Context) dto.FinanceFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return dto.FinanceFilter{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Method:   c.Query("method"),
		Page:     page,
		Limit:    limit,
	}
}
