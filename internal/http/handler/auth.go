package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/internal/http/dto"
	"graspnest.app/api-server/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("login successful", dto.ToTokenResponse(pair)))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("token refreshed", dto.ToTokenResponse(pair)))
}

func (h *AuthHandler) ForgetPassword(c *gin.Context) {
	var req dto.ForgetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	sent, err := h.authService.ForgetPassword(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	if !sent {
		c.JSON(http.StatusNotFound, dto.Fail("user not found"))
		return
	}
	c.JSON(http.StatusOK, dto.OK("password reset email sent", nil))
}
