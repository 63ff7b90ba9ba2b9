package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/internal/http/dto"
	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/service"
)

type CommunityHandler struct {
	commService service.CommunityService
}

func NewCommunityHandler(commService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{commService: commService}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.commService.Create(ctx, req.OrgID, req.ToProfile(), req.Admin.ToIdentity())
	if err != nil {
		respondError(c, err)
		return
	}

	msg := "community created"
	if !result.NotificationSent {
		msg = "community created, credential email not sent"
	}
	c.JSON(http.StatusCreated, dto.OK(msg, dto.ToProvisionResponse(result)))
}

func (h *CommunityHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	commID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	view, err := h.commService.Update(ctx, commID, req.ToProfile(), req.Admin.ToIdentity())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("community updated", dto.ToCommunityViewResponse(view)))
}

func (h *CommunityHandler) Get(c *gin.Context) {
	commID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.commService.Get(c.Request.Context(), commID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("community found", dto.ToCommunityViewResponse(view)))
}

func (h *CommunityHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		raw []model.Community
		err error
	)
	if orgParam := c.Query("org_id"); orgParam != "" {
		orgID, perr := strconv.ParseInt(orgParam, 10, 64)
		if perr != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid org_id"))
			return
		}
		raw, err = h.commService.ListByOrg(ctx, orgID)
	} else {
		raw, err = h.commService.List(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]*dto.CommunityResponse, 0, len(raw))
	for i := range raw {
		out = append(out, dto.ToCommunityResponse(&raw[i]))
	}
	c.JSON(http.StatusOK, dto.OK("communities listed", out))
}

func (h *CommunityHandler) Remove(c *gin.Context) {
	commID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.commService.Remove(c.Request.Context(), commID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("community removed", nil))
}
