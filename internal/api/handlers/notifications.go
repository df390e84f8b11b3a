package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/max-ramos-rod/nda-backend/internal/services"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	vault  *services.VaultService
	logger *zap.Logger
}

func NewNotificationHandler(vault *services.VaultService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		vault:  vault,
		logger: logger.With(zap.String("handler", "notification")),
	}
}

// ListNotifications returns the owner's access events, most recent
// first, each carrying the process title and the accessor's username.
func (nh *NotificationHandler) ListNotifications(c *gin.Context) {
	clientUsername := c.Query("client_username")
	if clientUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_username query parameter is required"})
		return
	}

	notifications, err := nh.vault.Notifications(c.Request.Context(), clientUsername)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}
