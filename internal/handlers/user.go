package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

func (h *UserHandler) GetDailyStreak(c *gin.Context) {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	streak, err := h.userService.GetDailyStreak(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, "user_not_found", err)
			return
		}
		h.log.Error("GetDailyStreak failed", "error", err, "user_id", userID)
		RespondError(c, http.StatusInternalServerError, "load_streak_failed", err)
		return
	}
	RespondOK(c, gin.H{"streak": streak})
}
