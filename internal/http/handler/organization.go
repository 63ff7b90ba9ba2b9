package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/internal/http/dto"
	"graspnest.app/api-server/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.orgService.Create(ctx, req.ToProfile(), req.Admin.ToIdentity())
	if err != nil {
		respondError(c, err)
		return
	}

	msg := "organization created"
	if !result.NotificationSent {
		msg = "organization created, credential email not sent"
	}
	c.JSON(http.StatusCreated, dto.OK(msg, dto.ToProvisionResponse(result)))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	view, err := h.orgService.Update(ctx, orgID, req.ToProfile(), req.Admin.ToIdentity())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("organization updated", dto.ToOrganizationViewResponse(view)))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.orgService.Get(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("organization found", dto.ToOrganizationViewResponse(view)))
}

func (h *OrganizationHandler) List(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		view, err := h.orgService.GetByName(c.Request.Context(), name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK("organization found", dto.ToOrganizationViewResponse(view)))
		return
	}

	orgs, err := h.orgService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]*dto.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		out = append(out, dto.ToOrganizationResponse(&orgs[i]))
	}
	c.JSON(http.StatusOK, dto.OK("organizations listed", out))
}

func (h *OrganizationHandler) Remove(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orgService.Remove(c.Request.Context(), orgID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("organization removed", nil))
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid id"))
		return 0, false
	}
	return id, true
}
