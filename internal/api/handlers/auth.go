package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/max-ramos-rod/nda-backend/internal/db/models"
	"github.com/max-ramos-rod/nda-backend/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

func NewAuthHandler(userService *services.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger.With(zap.String("handler", "auth")),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userResponse is the boundary view of a user: the Stellar secret key
// never crosses it.
type userResponse struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	StellarPublicKey string    `json:"stellar_public_key"`
	UserType         string    `json:"user_type"`
	CreatedAt        time.Time `json:"created_at"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:               user.ID,
		Username:         user.Username,
		StellarPublicKey: user.StellarPublicKey,
		UserType:         string(user.Role),
		CreatedAt:        user.CreatedAt,
	}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password and user_type are required"})
		return
	}

	role := models.UserRole(req.UserType)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_type must be client or supplier"})
		return
	}

	user, err := ah.userService.Register(c.Request.Context(), req.Username, req.Password, role)
	if err != nil {
		ah.logger.Warn("Registration failed", zap.String("username", req.Username), zap.Error(err))
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := ah.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ah.logger.Warn("Login failed", zap.String("username", req.Username))
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
