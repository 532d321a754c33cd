package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type notificationService interface {
	GetNotifications(ctx context.Context) ([]models.Notification, error)
	CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error)
}

// createNotificationRequest is the admin broadcast payload.
type createNotificationRequest struct {
	SchoolID  string          `json:"schoolId"`
	Title     string          `json:"title" validate:"required"`
	Message   string          `json:"message" validate:"required"`
	Audience  models.UserRole `json:"audience"`
	CreatedBy string          `json:"createdBy"`
}

// NotificationHandler exposes admin notification endpoints.
type NotificationHandler struct {
	service   notificationService
	logger    *zap.Logger
	validator *validator.Validate
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(svc notificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: svc, logger: nopIfNil(logger), validator: validator.New()}
}

// List godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string][]models.Notification
// @Failure 500 {object} response.ErrorBody
// @Router /admin/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.service.GetNotifications(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "Failed to fetch notifications")
		return
	}
	response.JSON(c, "notifications", notifications)
}

// Create godoc
// @Summary Create notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body createNotificationRequest true "Notification payload"
// @Success 200 {object} map[string]models.Notification
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /admin/notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, err, "Failed to create notification")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		missing(c, "Title and message are required")
		return
	}
	created, err := h.service.CreateNotification(c.Request.Context(), &models.Notification{
		SchoolID:  req.SchoolID,
		Title:     req.Title,
		Message:   req.Message,
		Audience:  req.Audience,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		fail(c, h.logger, err, "Failed to create notification")
		return
	}
	response.JSON(c, "notification", created)
}
