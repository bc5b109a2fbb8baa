package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anousone23/twitter-clone/internal/auth"
	"github.com/anousone23/twitter-clone/internal/dto"
	"github.com/anousone23/twitter-clone/internal/service"
)

// NotificationHandler lists and deletes the caller's notifications.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler returns a new NotificationHandler.
func NewNotificationHandler(n *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: n}
}

// List godoc
// @Summary      List notifications (marks all read)
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListNotificationsResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	list, err := h.notifications.List(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("list notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, dto.ListNotificationsResponse{Items: notificationsToResponses(list)})
}

// DeleteAll godoc
// @Summary      Delete all notifications
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  map[string]string
// @Router       /notifications [delete]
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	if err := h.notifications.DeleteAll(c.Request.Context(), user.ID); err != nil {
		log.Printf("delete notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notifications deleted successfully"})
}

// Delete godoc
// @Summary      Delete one notification
// @Tags         notifications
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, _ := auth.CurrentUser(c)
	if err := h.notifications.Delete(c.Request.Context(), user.ID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "you are not allowed to delete this notification"})
		default:
			log.Printf("delete notification: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted successfully"})
}
