package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/logging"
	"food-ordering-api/middleware"
	"food-ordering-api/store"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		clientError(c, http.StatusBadRequest, "login_failed", bindingMessage(err))
		return
	}

	admin, err := h.Store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			clientError(c, http.StatusUnauthorized, "login_failed", "invalid username or password")
			return
		}
		serverError(c, "login_failed", err)
		return
	}

	token, err := h.Tokens.GenerateToken(admin)
	if err != nil {
		serverError(c, "login_failed", err)
		return
	}

	logging.FromContext(c.Request.Context()).Info("admin logged in", "username", admin.Username)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// Me returns the identity carried by the caller's token
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"admin_id": middleware.GetAdminID(c),
		"username": middleware.GetUsername(c),
	}})
}
