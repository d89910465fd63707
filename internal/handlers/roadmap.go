package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/services"
)

type RoadmapHandler struct {
	log               *logger.Logger
	generationService services.RoadmapGenerationService
	questionService   services.RoadmapQuestionService
}

func NewRoadmapHandler(
	log *logger.Logger,
	generationService services.RoadmapGenerationService,
	questionService services.RoadmapQuestionService,
) *RoadmapHandler {
	return &RoadmapHandler{
		log:               log.With("handler", "RoadmapHandler"),
		generationService: generationService,
		questionService:   questionService,
	}
}

func (h *RoadmapHandler) Generate(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	roadmapID, err := pathUUID(c, "roadmapId")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_roadmap_id", err)
		return
	}

	result, err := h.generationService.Generate(c.Request.Context(), userID, roadmapID)
	if err != nil {
		h.log.Error("Generate failed", "error", err, "user_id", userID, "roadmap_id", roadmapID)
		RespondError(c, http.StatusInternalServerError, "generation_failed", err)
		return
	}
	if result.Status == services.GenerationStatusInvalid {
		RespondError(c, http.StatusBadRequest, "roadmap_not_generatable",
			errors.New("roadmap has no onboarding answers to generate from"))
		return
	}
	RespondOK(c, result)
}

type submitAnswerRequest struct {
	AnswerID     string `json:"answer_id" binding:"required"`
	CurrentOrder int    `json:"current_order" binding:"required"`
}

func (h *RoadmapHandler) SubmitAnswer(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	roadmapID, err := pathUUID(c, "roadmapId")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_roadmap_id", err)
		return
	}
	questionID, err := pathUUID(c, "questionId")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	answerID, err := parseUUIDField(req.AnswerID, "answer_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_answer_id", err)
		return
	}

	result, err := h.questionService.SubmitAnswer(c.Request.Context(), services.SubmitAnswerInput{
		UserID:       userID,
		RoadmapID:    roadmapID,
		QuestionID:   questionID,
		AnswerID:     answerID,
		CurrentOrder: req.CurrentOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoadmapNotFound):
			RespondError(c, http.StatusNotFound, "roadmap_not_found", err)
		case errors.Is(err, services.ErrQuestionNotFound):
			RespondError(c, http.StatusNotFound, "question_not_found", err)
		case errors.Is(err, services.ErrAnswerNotFound):
			RespondError(c, http.StatusBadRequest, "answer_not_found", err)
		case errors.Is(err, services.ErrRoadmapCompleted):
			RespondError(c, http.StatusConflict, "roadmap_completed", err)
		default:
			h.log.Error("SubmitAnswer failed", "error", err, "user_id", userID, "roadmap_id", roadmapID)
			RespondError(c, http.StatusInternalServerError, "submit_answer_failed", err)
		}
		return
	}
	RespondOK(c, result)
}
