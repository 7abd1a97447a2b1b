// Package llm generates multiple-choice exams through a hosted language model.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/pkg/apperrors"

	openai "github.com/sashabaranov/go-openai"
)

// GenerateParams are the exam parameters embedded in the prompt.
type GenerateParams struct {
	Subject          string
	Grade            string
	Difficulty       string
	CognitiveSkill   string
	QuestionCount    int
	MarksPerQuestion int
}

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new LLM client. baseURL may be empty to use the default API
// endpoint.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// GenerateMCQs asks the model for a set of multiple-choice questions and
// parses its free-text reply. The model is called exactly once; any failure,
// including unparseable output, surfaces as ErrGenerationFailed and is not
// retried.
func (c *Client) GenerateMCQs(ctx context.Context, params GenerateParams) ([]models.Question, error) {
	prompt := buildPrompt(params)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: model call: %v", apperrors.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: model returned no choices", apperrors.ErrGenerationFailed)
	}

	questions, err := parseQuestions(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	// The model is asked for exactly 4 options and an in-range index; a reply
	// that violates that is a generation failure, not a partial result.
	if err := validateQuestions(questions, params.QuestionCount); err != nil {
		return nil, err
	}

	for i := range questions {
		questions[i].ID = uuid.New().String()
	}

	return questions, nil
}

// buildPrompt embeds the exam parameters in a natural-language prompt with a
// JSON example of the expected reply shape.
func buildPrompt(p GenerateParams) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d MCQs for the subject %q for Grade %s students.\n",
		p.QuestionCount, p.Subject, p.Grade)
	fmt.Fprintf(&sb, "Difficulty: %s\n", p.Difficulty)
	fmt.Fprintf(&sb, "Cognitive Skill: %s\n", p.CognitiveSkill)
	sb.WriteString("Each question should have 4 options and only one correct answer.\n")
	sb.WriteString("Respond ONLY with JSON in the following format:\n\n")
	sb.WriteString("[\n  {\n")
	sb.WriteString(`    "questionText": "What is the function of chlorophyll?",` + "\n")
	sb.WriteString(`    "options": ["Helps in respiration", "Helps in digestion", "Helps in photosynthesis", "None of the above"],` + "\n")
	sb.WriteString(`    "correctIndex": 2,` + "\n")
	fmt.Fprintf(&sb, "    \"marks\": %d\n", p.MarksPerQuestion)
	sb.WriteString("  }\n]\n")
	return sb.String()
}

// parseQuestions extracts the JSON array embedded in the model's reply. The
// slice from the first '[' to the last ']' tolerates leading and trailing
// commentary the model sometimes adds around the array.
func parseQuestions(raw string) ([]models.Question, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in model reply", apperrors.ErrGenerationFailed)
	}

	var questions []models.Question
	if err := json.Unmarshal([]byte(raw[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("%w: model reply is not valid JSON: %v", apperrors.ErrGenerationFailed, err)
	}

	return questions, nil
}

// validateQuestions enforces the structural contract of a generated exam.
func validateQuestions(questions []models.Question, requested int) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: model returned no questions (requested %d)", apperrors.ErrGenerationFailed, requested)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return fmt.Errorf("%w: question %d has empty text", apperrors.ErrGenerationFailed, i)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("%w: question %d has %d options, want 4", apperrors.ErrGenerationFailed, i, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			return fmt.Errorf("%w: question %d has correct index %d out of range", apperrors.ErrGenerationFailed, i, q.CorrectIndex)
		}
	}
	return nil
}
