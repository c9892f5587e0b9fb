package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/internal/middleware"
	"github.com/velobg/rental-backend/user"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *API) loginHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, ok := a.store.FindAdminByUsername(req.Username)
	if !ok || !user.CheckPassword(admin.PasswordHash, req.Password) {
		logger.Info("failed admin login", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	admin.PasswordHash = ""
	c.JSON(http.StatusOK, gin.H{
		"admin": admin,
		"token": middleware.Token(admin.ID, time.Now().UnixMilli()),
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (a *API) changePasswordHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	admin, _ := middleware.GetAdmin(c)
	stored, ok := a.store.FindAdmin(admin.ID)
	if !ok || !user.CheckPassword(stored.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
		return
	}

	hash, err := user.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	stored.PasswordHash = hash
	if err := a.store.UpdateAdmin(stored); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
