package httpHandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rent-server/auth"
)

type LoginHandler struct {
	auth *auth.Service
}

func NewLoginHandler(svc *auth.Service) *LoginHandler {
	return &LoginHandler{auth: svc}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Success  bool   `json:"success"`
}

// Register handles POST /api/v1/auth/register
func (h *LoginHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data":    user,
	})
}

// Login handles POST /api/v1/auth/login
func (h *LoginHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
		Success:  true,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *LoginHandler) Logout(c *gin.Context) {
	h.auth.Logout(auth.TokenFrom(c))
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
