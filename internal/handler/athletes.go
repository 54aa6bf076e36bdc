package handler

import (
	"net/http"
	"strconv"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/middleware"
	"sportclub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AthleteHandler struct{ svc service.AthleteService }

func NewAthleteHandler(svc service.AthleteService) *AthleteHandler {
	return &AthleteHandler{svc: svc}
}

// Create godoc
// @Summary Registers a new athlete profile
// @Tags athletes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateAthleteRequest true "Athlete data"
// @Success 201 {object} dto.AthleteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/athletes [post]
func (h *AthleteHandler) Create(c *gin.Context) {
	var req dto.CreateAthleteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.OrgID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary Fetches one athlete profile
// @Tags athletes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Athlete ID"
// @Success 200 {object} dto.AthleteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/athletes/{id} [get]
func (h *AthleteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), middleware.OrgID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Lists athletes with search and group filters
// @Tags athletes
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name search"
// @Param active query string false "false | all (default active only)"
// @Param group_id query string false "Filter by group membership"
// @Success 200 {object} dto.AthleteListResponse
// @Router /v1/athletes [get]
func (h *AthleteHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter := dto.AthleteFilter{
		Search:  c.Query("search"),
		Active:  c.Query("active"),
		GroupID: c.Query("group_id"),
		Page:    page,
		Limit:   limit,
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.OrgID(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update modifies an athlete profile.
func (h *AthleteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateAthleteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.OrgID(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete deactivates the profile (soft delete).
func (h *AthleteHandler) Delete(c *gin.Context) {
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
