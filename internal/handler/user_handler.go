package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/pkg/response"
)

type userService interface {
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler exposes user endpoints.
type UserHandler struct {
	service userService
	logger  *zap.Logger
}

func NewUserHandler(svc userService, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: nopIfNil(logger)}
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		missing(c, "ID is required")
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err, "Failed to delete user")
		return
	}
	response.Message(c, "User deleted successfully")
}
