// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"net/http"
	"time"

	"lane-supply-api-server/config"
	"lane-supply-api-server/internal/auth"
	"lane-supply-api-server/internal/database"
	"lane-supply-api-server/internal/models"
	"lane-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthHandler struct {
	DB    *mongo.Database
	Store *store.Store
	Cfg   config.Config
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credential table and issues a JWT. A successful login
// emits a "login" activity notification for that username.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := database.Authenticate(c.Request.Context(), h.DB, req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	expiration, err := time.ParseDuration(h.Cfg.JWT.Expiration)
	if err != nil {
		expiration = 24 * time.Hour
	}
	token, err := auth.GenerateJWT(user.Username, user.Role, user.DisplayName, expiration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	h.Store.Notify(c.Request.Context(), &models.Notification{
		User:    user.Username,
		Title:   "تسجيل دخول",
		Message: "تم تسجيل الدخول إلى حسابك",
		Type:    models.NotifyInfo,
	})

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

// Me returns the current user from the token claims.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, models.PublicUser{
		Username:    c.GetString("user_name"),
		Role:        models.Role(c.GetString("user_role")),
		DisplayName: c.GetString("user_display_name"),
	})
}

// Logout emits the "logout" activity notification. Tokens are stateless, so
// the client simply discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	username := c.GetString("user_name")

	h.Store.Notify(c.Request.Context(), &models.Notification{
		User:    username,
		Title:   "تسجيل خروج",
		Message: "تم تسجيل الخروج من حسابك",
		Type:    models.NotifyInfo,
	})

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
