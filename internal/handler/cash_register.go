package handler

import (
	"net/http"
	"strconv"
	"time"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/infra"
	"sportclub/internal/middleware"
	"sportclub/internal/repository"
	"sportclub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashRegisterHandler struct {
	svc            service.CashRegisterService
	orgRepo        repository.OrganizationRepository
	pdfStoragePath string
}

func NewCashRegisterHandler(svc service.CashRegisterService, orgRepo repository.OrganizationRepository, pdfStoragePath string) *CashRegisterHandler {
	return &CashRegisterHandler{svc: svc, orgRepo: orgRepo, pdfStoragePath: pdfStoragePath}
}

// Open godoc
// @Summary Opens today's cash register
// @Tags cash-register
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenRegisterRequest true "Opening data"
// @Success 201 {object} dto.CashRegisterResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cash-register/open [post]
func (h *CashRegisterHandler) Open(c *gin.Context) {
	var req dto.OpenRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), middleware.OrgID(c), middleware.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Closes a cash register with the declared balance
// @Tags cash-register
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Register ID"
// @Param body body dto.CloseRegisterRequest true "Closing declaration"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/cash-register/{id}/close [post]
func (h *CashRegisterHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.CloseRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), middleware.OrgID(c), middleware.UserID(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddMovement godoc
// @Summary Records a movement on today's open register
// @Tags cash-register
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddMovementRequest true "Movement data, optionally with product lines"
// @Success 201 {object} dto.CashMovementResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/cash-register/movements [post]
func (h *CashRegisterHandler) AddMovement(c *gin.Context) {
	var req dto.AddMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddManualMovement(c.Request.Context(), middleware.OrgID(c), middleware.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DailySummary godoc
// @Summary Returns aggregated totals for one day's ledger
// @Tags cash-register
// @Produce json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} dto.DailySummaryResponse
// @Router /v1/cash-register/summary [get]
func (h *CashRegisterHandler) DailySummary(c *gin.Context) {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		date = &parsed
	}
	resp, err := h.svc.GetDailySummary(c.Request.Context(), middleware.OrgID(c), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements returns the full ledger of one register in insertion order.
func (h *CashRegisterHandler) ListMovements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), middleware.OrgID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// History returns past registers newest first.
func (h *CashRegisterHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.History(c.Request.Context(), middleware.OrgID(c), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report godoc
// @Summary Generates the day report PDF for a register
// @Tags cash-register
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Register ID"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/cash-register/{id}/report.pdf [get]
func (h *CashRegisterHandler) Report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	reg, movements, err := h.svc.DayReport(c.Request.Context(), middleware.OrgID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	orgName := "Sport Club"
	if org, err := h.orgRepo.FindByID(c.Request.Context(), middleware.OrgID(c)); err == nil {
		orgName = org.Name
	}
	path, err := infra.GenerateRegisterReportPDF(reg, movements, orgName, h.pdfStoragePath)
	if err != nil {
		writeError(c, err)
		return
	}
	c.FileAttachment(path, "register_"+reg.Date.Format("2006-01-02")+".pdf")
}
