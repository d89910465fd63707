package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/techblitz/techblitz-backend/internal/types"
)

const roadmapSchemaName = "roadmap-questions"

const roadmapSystemPrompt = "You're an expert software developer. Given a series of user-answered questions with results, " +
	"generate a 10-question roadmap to enhance the user's knowledge. Focus on areas the user got wrong, " +
	"build on prior questions, and guide their next steps. Each question should have 4 answers (1 correct). " +
	"Any code snippet that you provide needs to be wrapped in a pre tag and a code tag and be put in the 'codeSnippet' field."

// AnswerSummary is one aggregated seed answer, serialized as the user payload
// of the generation prompt.
type AnswerSummary struct {
	Question      string `json:"question"`
	CorrectAnswer bool   `json:"correctAnswer"`
	Difficulty    string `json:"difficulty"`
}

type aiAnswer struct {
	Answer  string `json:"answer"`
	Correct bool   `json:"correct"`
}

type aiQuestion struct {
	Questions   string     `json:"questions"`
	CodeSnippet *string    `json:"codeSnippet"`
	Hint        *string    `json:"hint"`
	Difficulty  string     `json:"difficulty"`
	Answers     []aiAnswer `json:"answers"`
}

type aiQuestionResponse struct {
	QuestionData []aiQuestion `json:"questionData"`
}

// roadmapQuestionSchema is the structured-output contract sent to the model
// and the contract its response is validated against before anything is
// persisted.
func roadmapQuestionSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"questionData"},
		"properties": map[string]any{
			"questionData": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []any{"questions", "codeSnippet", "hint", "difficulty", "answers"},
					"properties": map[string]any{
						"questions":   map[string]any{"type": "string"},
						"codeSnippet": map[string]any{"type": []any{"string", "null"}},
						"hint":        map[string]any{"type": []any{"string", "null"}},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{types.DifficultyEasy, types.DifficultyMedium, types.DifficultyHard},
						},
						"answers": map[string]any{
							"type":     "array",
							"minItems": 4,
							"maxItems": 4,
							"items": map[string]any{
								"type":                 "object",
								"additionalProperties": false,
								"required":             []any{"answer", "correct"},
								"properties": map[string]any{
									"answer":  map[string]any{"type": "string"},
									"correct": map[string]any{"type": "boolean"},
								},
							},
						},
					},
				},
			},
		},
	}
}

var (
	compiledSchemaOnce sync.Once
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
)

func compiledRoadmapSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		// the jsonschema library wants a parsed JSON value, not raw bytes
		defBytes, err := json.Marshal(roadmapQuestionSchema())
		if err != nil {
			compiledSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compiledSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		schemaURL := fmt.Sprintf("schema://%s.json", roadmapSchemaName)
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, compiledSchemaErr
}

// parseGeneratedQuestions validates the model output against the roadmap
// question schema, checks the parts a JSON schema cannot express (exactly one
// correct answer per question), and materializes id-assigned, ordered rows
// ready for the transactional commit. Any mismatch is an error; the committer
// assumes well-formed complete input.
func parseGeneratedQuestions(roadmapID uuid.UUID, raw json.RawMessage) ([]*types.RoadmapQuestion, []*types.RoadmapAnswer, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, nil, fmt.Errorf("invalid generation response JSON: %w", err)
	}

	schema, err := compiledRoadmapSchema()
	if err != nil {
		return nil, nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, nil, fmt.Errorf("generation response failed schema validation: %w", err)
	}

	var resp aiQuestionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, fmt.Errorf("decode generation response: %w", err)
	}
	if len(resp.QuestionData) == 0 {
		return nil, nil, fmt.Errorf("generation response contained no questions")
	}

	questions := make([]*types.RoadmapQuestion, 0, len(resp.QuestionData))
	var answers []*types.RoadmapAnswer

	for i, q := range resp.QuestionData {
		correctCount := 0
		for _, a := range q.Answers {
			if a.Correct {
				correctCount++
			}
		}
		if correctCount != 1 {
			return nil, nil, fmt.Errorf("question %d has %d correct answers, want exactly 1", i+1, correctCount)
		}

		questionID := uuid.New()
		var correctAnswerID uuid.UUID

		for _, a := range q.Answers {
			answerID := uuid.New()
			if a.Correct {
				correctAnswerID = answerID
			}
			answers = append(answers, &types.RoadmapAnswer{
				ID:         answerID,
				QuestionID: questionID,
				Answer:     a.Answer,
				Correct:    a.Correct,
			})
		}

		questions = append(questions, &types.RoadmapQuestion{
			ID:              questionID,
			RoadmapID:       roadmapID,
			Question:        q.Questions,
			CorrectAnswerID: correctAnswerID,
			CodeSnippet:     q.CodeSnippet,
			Hint:            q.Hint,
			Difficulty:      q.Difficulty,
			Completed:       false,
			Order:           i + 1,
		})
	}

	return questions, answers, nil
}
