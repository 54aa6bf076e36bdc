package handler

import (
	"net/http"
	"strconv"
	"strings"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/middleware"
	"sportclub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WaitlistHandler struct{ svc service.WaitlistService }

func NewWaitlistHandler(svc service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

// Create godoc
// @Summary Adds an athlete to a waitlist
// @Tags waitlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateWaitlistEntryRequest true "Entry data"
// @Success 201 {object} dto.WaitlistEntryResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/waitlist [post]
func (h *WaitlistHandler) Create(c *gin.Context) {
	var req dto.CreateWaitlistEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.OrgID(c), middleware.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Assign godoc
// @Summary Assigns a waiting entry a spot
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.WaitlistEntryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/waitlist/{id}/assign [post]
func (h *WaitlistHandler) Assign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Assign(c.Request.Context(), middleware.OrgID(c), middleware.UserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Cancels a waiting entry (soft delete)
// @Tags waitlist
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/waitlist/{id} [delete]
func (h *WaitlistHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.OrgID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete cancels several waiting entries in one call. Entries that are
// not waiting are skipped; the response reports how many changed.
func (h *WaitlistHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteWaitlistRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.BulkDelete(c.Request.Context(), middleware.OrgID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkResultResponse{Updated: int(n)})
}

// BulkUpdatePriority changes the priority of several waiting entries.
func (h *WaitlistHandler) BulkUpdatePriority(c *gin.Context) {
	var req dto.BulkUpdatePriorityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.BulkUpdatePriority(c.Request.Context(), middleware.OrgID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkResultResponse{Updated: int(n)})
}

// List godoc
// @Summary Lists waitlist entries ordered by priority then position
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma-separated subset of waiting,assigned,cancelled"
// @Param reference_type query string false "athlete_group | schedule"
// @Param group_id query string false "Filter by group"
// @Param search query string false "Athlete name search"
// @Success 200 {object} dto.WaitlistListResponse
// @Router /v1/waitlist [get]
func (h *WaitlistHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	filter := dto.WaitlistFilter{
		Statuses:      statuses,
		ReferenceType: c.Query("reference_type"),
		GroupID:       c.Query("group_id"),
		Search:        c.Query("search"),
		Page:          page,
		Limit:         limit,
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.OrgID(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
