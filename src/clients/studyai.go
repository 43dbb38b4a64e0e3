package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"studysphere-svc/src/internal/config"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/sirupsen/logrus"
)

// StudyAIClient handles communication with the Study AI generation service.
// Prompt construction lives on the AI service side; this client only carries
// source material over and decodes the generated content.
type StudyAIClient struct {
	baseURL    string
	httpClient *http.Client
}

type GeneratedCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GeneratedQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

func NewStudyAIClient(cfg *config.Configuration) *StudyAIClient {
	return &StudyAIClient{
		baseURL: cfg.StudyAI.URL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.StudyAI.Timeout) * time.Second,
		},
	}
}

// GenerateFlashcards asks the AI service to turn note content into cards.
func (c *StudyAIClient) GenerateFlashcards(ctx context.Context, content string, count int) ([]GeneratedCard, error) {
	var response struct {
		Cards   []GeneratedCard `json:"cards"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
	}

	if err := c.post(ctx, "/generate/flashcards", map[string]any{
		"content": content,
		"count":   count,
	}, &response); err != nil {
		return nil, err
	}

	return response.Cards, nil
}

// GenerateQuiz asks the AI service to turn note content into quiz questions.
func (c *StudyAIClient) GenerateQuiz(ctx context.Context, content string, count int) ([]GeneratedQuestion, error) {
	var response struct {
		Questions []GeneratedQuestion `json:"questions"`
		Status    string              `json:"status"`
		Message   string              `json:"message"`
	}

	if err := c.post(ctx, "/generate/quiz", map[string]any{
		"content": content,
		"count":   count,
	}, &response); err != nil {
		return nil, err
	}

	return response.Questions, nil
}

func (c *StudyAIClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call study ai service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"url":    url,
			"status": resp.StatusCode,
		}).Error("Study AI service returned non-OK status")
		return models.ErrGenerationFailed
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
