package handler

import (
	"net/http"

	"sportclub/internal/apierror"
	"sportclub/internal/dto"
	"sportclub/internal/middleware"
	"sportclub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GroupHandler struct{ svc service.GroupService }

func NewGroupHandler(svc service.GroupService) *GroupHandler { return &GroupHandler{svc: svc} }

// Create godoc
// @Summary Creates a training group
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateGroupRequest true "Group data"
// @Success 201 {object} dto.GroupResponse
// @Router /v1/groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
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

// Get returns a group with its member count.
func (h *GroupHandler) Get(c *gin.Context) {
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

// List returns all active groups of the organization.
func (h *GroupHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), middleware.OrgID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Update modifies name, capacity or monthly fee.
func (h *GroupHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateGroupRequest
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

// Deactivate hides the group from listings; rows referencing it survive.
func (h *GroupHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), middleware.OrgID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMembers godoc
// @Summary Lists the athletes enrolled in a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/groups/{id}/members [get]
func (h *GroupHandler) ListMembers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.ListMembers(c.Request.Context(), middleware.OrgID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
