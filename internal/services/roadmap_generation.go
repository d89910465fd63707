package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/repos"
	"github.com/techblitz/techblitz-backend/internal/types"
)

// ErrGenerationFailed is the single error surfaced when the transactional
// commit of a generated roadmap fails. Details go to the log, not the caller.
var ErrGenerationFailed = errors.New("roadmap generation failed")

// GenerationState tags the outcome of resolving a roadmap's generation state.
type GenerationState string

const (
	// StateCompleted — the roadmap is COMPLETED; the payload is the history
	// of generated questions the user answered.
	StateCompleted GenerationState = "completed"
	// StateAlreadyGenerated — the roadmap already has its generated question
	// set; the generator must not run again.
	StateAlreadyGenerated GenerationState = "generated"
	// StateNeedsGeneration — no generation pass has happened; the payload is
	// the aggregated seed-answer data to prompt with.
	StateNeedsGeneration GenerationState = "needs_generation"
	// StateInvalid — no seed answers exist for this roadmap/user pair.
	// A nonexistent roadmap resolves the same way.
	StateInvalid GenerationState = "invalid"
)

type GenerationData struct {
	State   GenerationState
	Answers []AnswerSummary
}

// GenerationStatus is the caller-facing result tag of Generate.
type GenerationStatus string

const (
	GenerationStatusCreated   GenerationStatus = "created"
	GenerationStatusGenerated GenerationStatus = "generated"
	GenerationStatusCompleted GenerationStatus = "completed"
	GenerationStatusInvalid   GenerationStatus = "invalid"
)

type GenerationResult struct {
	Status    GenerationStatus         `json:"status"`
	Questions []*types.RoadmapQuestion `json:"questions,omitempty"`
	History   []AnswerSummary          `json:"history,omitempty"`
}

type RoadmapGenerationService interface {
	// PrepareGenerationData resolves whether generation is needed, already
	// done, or foreclosed for the roadmap, and aggregates the prompt data
	// when it is needed.
	PrepareGenerationData(ctx context.Context, userID, roadmapID uuid.UUID) (*GenerationData, error)
	// Generate runs the full workflow: resolve, prompt the model, and commit
	// the generated question set exactly once per roadmap.
	Generate(ctx context.Context, userID, roadmapID uuid.UUID) (*GenerationResult, error)
}

type roadmapGenerationService struct {
	db  *gorm.DB
	log *logger.Logger

	roadmapRepo      repos.RoadmapRepo
	questionRepo     repos.RoadmapQuestionRepo
	answerRepo       repos.RoadmapAnswerRepo
	seedAnswerRepo   repos.DefaultRoadmapAnswerRepo
	seedQuestionRepo repos.DefaultRoadmapQuestionRepo
	aiLogRepo        repos.AICallLogRepo

	ai OpenAIClient
}

func NewRoadmapGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	roadmapRepo repos.RoadmapRepo,
	questionRepo repos.RoadmapQuestionRepo,
	answerRepo repos.RoadmapAnswerRepo,
	seedAnswerRepo repos.DefaultRoadmapAnswerRepo,
	seedQuestionRepo repos.DefaultRoadmapQuestionRepo,
	aiLogRepo repos.AICallLogRepo,
	ai OpenAIClient,
) RoadmapGenerationService {
	return &roadmapGenerationService{
		db:               db,
		log:              baseLog.With("service", "RoadmapGenerationService"),
		roadmapRepo:      roadmapRepo,
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		seedAnswerRepo:   seedAnswerRepo,
		seedQuestionRepo: seedQuestionRepo,
		aiLogRepo:        aiLogRepo,
		ai:               ai,
	}
}

func (s *roadmapGenerationService) PrepareGenerationData(ctx context.Context, userID, roadmapID uuid.UUID) (*GenerationData, error) {
	// A COMPLETED roadmap is read-only: its answer recap is the generated
	// path the user actually took, not the seed questions.
	completed, err := s.roadmapRepo.GetByIDForUser(ctx, nil, roadmapID, userID, types.RoadmapStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("load completed roadmap: %w", err)
	}
	if completed != nil {
		questions, err := s.questionRepo.GetByRoadmapID(ctx, nil, roadmapID)
		if err != nil {
			return nil, fmt.Errorf("load generated question history: %w", err)
		}
		history := make([]AnswerSummary, 0, len(questions))
		for _, q := range questions {
			history = append(history, AnswerSummary{
				Question:      q.Question,
				CorrectAnswer: q.UserCorrect,
				Difficulty:    q.Difficulty,
			})
		}
		return &GenerationData{State: StateCompleted, Answers: history}, nil
	}

	roadmap, err := s.roadmapRepo.GetByIDForUser(ctx, nil, roadmapID, userID, "")
	if err != nil {
		return nil, fmt.Errorf("load roadmap: %w", err)
	}
	if roadmap != nil && roadmap.HasGeneratedRoadmap {
		return &GenerationData{State: StateAlreadyGenerated}, nil
	}

	seedAnswers, err := s.seedAnswerRepo.GetByRoadmapID(ctx, nil, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("load seed answers: %w", err)
	}
	if len(seedAnswers) == 0 {
		return &GenerationData{State: StateInvalid}, nil
	}

	questionIDs := make([]uuid.UUID, 0, len(seedAnswers))
	for _, a := range seedAnswers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	seedQuestions, err := s.seedQuestionRepo.GetByIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("load seed questions: %w", err)
	}
	byID := make(map[uuid.UUID]*types.DefaultRoadmapQuestion, len(seedQuestions))
	for _, q := range seedQuestions {
		byID[q.ID] = q
	}

	summaries := make([]AnswerSummary, 0, len(seedAnswers))
	for _, a := range seedAnswers {
		question, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		summaries = append(summaries, AnswerSummary{
			Question:      question.AITitle,
			CorrectAnswer: a.Correct,
			Difficulty:    question.Difficulty,
		})
	}

	return &GenerationData{State: StateNeedsGeneration, Answers: summaries}, nil
}

func (s *roadmapGenerationService) Generate(ctx context.Context, userID, roadmapID uuid.UUID) (*GenerationResult, error) {
	data, err := s.PrepareGenerationData(ctx, userID, roadmapID)
	if err != nil {
		return nil, err
	}

	switch data.State {
	case StateInvalid:
		return &GenerationResult{Status: GenerationStatusInvalid}, nil
	case StateCompleted:
		return &GenerationResult{Status: GenerationStatusCompleted, History: data.Answers}, nil
	case StateAlreadyGenerated:
		questions, err := s.questionRepo.GetByRoadmapID(ctx, nil, roadmapID)
		if err != nil {
			return nil, fmt.Errorf("load generated questions: %w", err)
		}
		return &GenerationResult{Status: GenerationStatusGenerated, Questions: questions}, nil
	}

	payload, err := json.Marshal(data.Answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answer data: %w", err)
	}

	start := time.Now()
	raw, usage, genErr := s.ai.GenerateJSON(ctx, roadmapSystemPrompt, string(payload), roadmapSchemaName, roadmapQuestionSchema())
	s.logAICall(ctx, userID, roadmapID, time.Since(start), usage, genErr)
	if genErr != nil {
		return nil, fmt.Errorf("generate roadmap questions: %w", genErr)
	}
	if len(raw) == 0 {
		// the model returned no content at all
		return &GenerationResult{Status: GenerationStatusInvalid}, nil
	}

	questions, answers, err := parseGeneratedQuestions(roadmapID, raw)
	if err != nil {
		return nil, err
	}

	alreadyGenerated := false
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.roadmapRepo.LockForGeneration(ctx, tx, roadmapID); err != nil {
			return fmt.Errorf("lock roadmap: %w", err)
		}

		// Re-check under the lock: a concurrent request may have committed
		// between resolution and here.
		roadmap, err := s.roadmapRepo.GetByIDForUser(ctx, tx, roadmapID, userID, "")
		if err != nil {
			return fmt.Errorf("reload roadmap: %w", err)
		}
		if roadmap == nil {
			return fmt.Errorf("roadmap %s not found for user %s", roadmapID, userID)
		}
		if roadmap.HasGeneratedRoadmap {
			alreadyGenerated = true
			return nil
		}

		if _, err := s.questionRepo.Create(ctx, tx, questions); err != nil {
			return fmt.Errorf("insert generated questions: %w", err)
		}
		if _, err := s.answerRepo.Create(ctx, tx, answers); err != nil {
			return fmt.Errorf("insert generated answers: %w", err)
		}
		if err := s.roadmapRepo.SetGenerated(ctx, tx, roadmapID); err != nil {
			return fmt.Errorf("set generated flag: %w", err)
		}
		return nil
	})
	if txErr != nil {
		s.log.Error("Roadmap generation commit failed", "roadmap_id", roadmapID, "user_id", userID, "error", txErr)
		return nil, ErrGenerationFailed
	}

	committed, err := s.questionRepo.GetByRoadmapID(ctx, nil, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("load committed questions: %w", err)
	}

	if alreadyGenerated {
		return &GenerationResult{Status: GenerationStatusGenerated, Questions: committed}, nil
	}
	return &GenerationResult{Status: GenerationStatusCreated, Questions: committed}, nil
}

// logAICall records the generation call best-effort; failures are logged and
// swallowed.
func (s *roadmapGenerationService) logAICall(ctx context.Context, userID, roadmapID uuid.UUID, latency time.Duration, usage *AIUsage, callErr error) {
	row := &types.AICallLog{
		ID:        uuid.New(),
		UserID:    &userID,
		Kind:      "roadmap_generation",
		Model:     s.ai.Model(),
		LatencyMS: latency.Milliseconds(),
		Success:   callErr == nil,
		Metadata:  datatypes.JSON(fmt.Appendf(nil, `{"roadmap_id":%q}`, roadmapID)),
	}
	if usage != nil {
		row.InputTokens = usage.InputTokens
		row.OutputTokens = usage.OutputTokens
	}
	if callErr != nil {
		row.Error = callErr.Error()
	}
	if _, err := s.aiLogRepo.Create(ctx, nil, []*types.AICallLog{row}); err != nil {
		s.log.Warn("Failed to record AI call log", "error", err)
	}
}
