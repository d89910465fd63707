package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/services"
)

type LeaderboardHandler struct {
	log                *logger.Logger
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(log *logger.Logger, leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		log:                log.With("handler", "LeaderboardHandler"),
		leaderboardService: leaderboardService,
	}
}

func (h *LeaderboardHandler) GetFastestTimes(c *gin.Context) {
	questionID, err := pathUUID(c, "questionId")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}

	in := services.FastestTimesInput{QuestionID: questionID}
	if v, ok := queryInt(c, "numberOfResults"); ok {
		in.NumberOfResults = &v
	}
	if v, ok := queryInt(c, "page"); ok {
		in.Page = &v
	}
	if v, ok := queryInt(c, "pageSize"); ok {
		in.PageSize = &v
	}

	result, err := h.leaderboardService.GetFastestTimes(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrBadLeaderboardQuery) {
			RespondError(c, http.StatusBadRequest, "invalid_leaderboard_query", err)
			return
		}
		h.log.Error("GetFastestTimes failed", "error", err, "question_id", questionID)
		RespondError(c, http.StatusInternalServerError, "load_leaderboard_failed", err)
		return
	}
	RespondOK(c, result)
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
